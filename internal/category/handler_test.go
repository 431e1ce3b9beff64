package category

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/wichananm65/artisan-market-backend/internal/product"
)

type failingRepo struct{}

func (failingRepo) Counts() (map[string]int, error) { return nil, errors.New("db down") }

func newCatalogService() *Service {
	products := product.NewService(product.NewInMemoryRepository(product.SampleCatalog()), zerolog.Nop())
	return NewService(NewCatalogRepository(products), product.Categories, zerolog.Nop())
}

func TestGetCategories(t *testing.T) {
	app := fiber.New()
	NewHandler(newCatalogService()).RegisterPublicRoutes(app)

	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/product/category", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var items []CategoryItem
	if err := json.NewDecoder(res.Body).Decode(&items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != len(product.Categories) {
		t.Fatalf("expected %d categories, got %d", len(product.Categories), len(items))
	}
	for i, it := range items {
		if it.CategoryName != product.Categories[i] {
			t.Fatalf("expected category %q at %d, got %q", product.Categories[i], i, it.CategoryName)
		}
		if it.ProductCount != 2 {
			t.Fatalf("expected 2 sample products in %s, got %d", it.CategoryName, it.ProductCount)
		}
	}
}

func TestGetCategories_Limit(t *testing.T) {
	app := fiber.New()
	NewHandler(newCatalogService()).RegisterPublicRoutes(app)

	res, _ := app.Test(httptest.NewRequest("GET", "/api/v1/product/category?limit=2", nil))
	var items []CategoryItem
	if err := json.NewDecoder(res.Body).Decode(&items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(items))
	}
}

func TestList_RepositoryErrorKeepsCategories(t *testing.T) {
	items := NewService(failingRepo{}, product.Categories, zerolog.Nop()).List(0)
	if len(items) != len(product.Categories) {
		t.Fatalf("expected every category, got %d", len(items))
	}
	for _, it := range items {
		if it.ProductCount != 0 {
			t.Fatalf("expected zero counts, got %+v", it)
		}
	}
}

func TestPostgresCounts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"lower", "count"}).
		AddRow("pottery", 3).
		AddRow("jewelry", 1)
	mock.ExpectQuery("GROUP BY lower\\(category\\)").WillReturnRows(rows)

	items := NewService(NewPostgresRepository(db), product.Categories, zerolog.Nop()).List(0)
	if items[0].CategoryName != "pottery" || items[0].ProductCount != 3 {
		t.Fatalf("unexpected pottery item %+v", items[0])
	}
	if items[1].ProductCount != 0 {
		t.Fatalf("expected textiles to be zero, got %+v", items[1])
	}
	if items[2].ProductCount != 1 {
		t.Fatalf("expected jewelry to be 1, got %+v", items[2])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
