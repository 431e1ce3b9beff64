package main

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/wichananm65/artisan-market-backend/internal/admin"
	"github.com/wichananm65/artisan-market-backend/internal/category"
	"github.com/wichananm65/artisan-market-backend/internal/config"
	"github.com/wichananm65/artisan-market-backend/internal/logging"
	"github.com/wichananm65/artisan-market-backend/internal/product"
	"github.com/wichananm65/artisan-market-backend/internal/recommended"
	"github.com/wichananm65/artisan-market-backend/internal/search"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat, "artisan-market")

	rules := search.DefaultRules()
	if cfg.RulesPath != "" {
		loaded, err := search.LoadRules(cfg.RulesPath)
		if err != nil {
			log.Fatal().Err(err).Msg("load search rules")
		}
		rules = loaded
	}
	engine, err := search.NewEngine(rules)
	if err != nil {
		log.Fatal().Err(err).Msg("build search engine")
	}

	var (
		productRepo  product.Repository
		categoryRepo category.Repository
	)

	if cfg.DatabaseURL != "" {
		db := mustOpenDB(cfg.DatabaseURL, log)
		defer db.Close()

		pg := product.NewPostgresRepository(db)
		seedIfEmpty(pg, log)
		productRepo = pg
		categoryRepo = category.NewPostgresRepository(db)
	} else {
		log.Info().Msg("DATABASE_URL not set, serving the in-memory sample catalog")
		productRepo = product.NewInMemoryRepository(product.SampleCatalog())
	}

	products := product.NewService(productRepo, log)
	if categoryRepo == nil {
		categoryRepo = category.NewCatalogRepository(products)
	}

	app := fiber.New()
	app.Use(recover.New())
	setupCORS(app)
	app.Use(requestLogger(log))

	// fixed /api/v1/product/* paths go before the product :id route
	category.NewHandler(category.NewService(categoryRepo, engine.Categories(), log)).RegisterPublicRoutes(app)
	recommended.NewHandler(recommended.NewService(engine, products, cfg.MaxResults, log)).RegisterPublicRoutes(app)

	productHandler := product.NewHandler(products, cfg.AllowReset)
	productHandler.RegisterPublicRoutes(app)

	adminService := admin.NewService(admin.Credentials{Email: cfg.AdminEmail, PasswordHash: cfg.AdminPasswordHash}, cfg.JWTSecret, 0)
	if adminService.Enabled() {
		admin.NewHandler(adminService, log).RegisterPublicRoutes(app)
	}

	if cfg.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET not set, catalog admin routes are disabled")
	} else {
		app.Use(jwtware.New(jwtware.Config{
			SigningKey: []byte(cfg.JWTSecret),
		}))
		productHandler.RegisterProtectedRoutes(app)
	}

	log.Info().Str("addr", cfg.Addr).Msg("starting server")
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func mustOpenDB(url string, log zerolog.Logger) *sql.DB {
	db, err := sql.Open("pgx", url)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}
	if err := product.EnsureSchema(db); err != nil {
		log.Fatal().Err(err).Msg("ensure schema")
	}
	return db
}

// seedIfEmpty loads the sample catalog into a fresh database.
func seedIfEmpty(repo product.Repository, log zerolog.Logger) {
	existing, err := repo.List()
	if err != nil {
		log.Warn().Err(err).Msg("could not inspect catalog, skipping seed")
		return
	}
	if len(existing) > 0 {
		return
	}
	now := time.Now().UTC().Format(time.RFC3339)
	seed := product.SampleCatalog()
	for i := range seed {
		seed[i].CreatedAt = &now
		seed[i].UpdatedAt = &now
	}
	if err := repo.Reset(seed); err != nil {
		log.Warn().Err(err).Msg("seeding sample catalog failed")
		return
	}
	log.Info().Int("products", len(seed)).Msg("seeded sample catalog")
}

func requestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		log.Info().
			Str("method", c.Method()).
			Str("url", c.OriginalURL()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
		return err
	}
}
