package config

import (
	"os"
	"strconv"
)

type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	LogLevel    string
	LogFormat   string
	RulesPath   string
	MaxResults  int
	AllowReset  bool

	AdminEmail        string
	AdminPasswordHash string // bcrypt
}

func Load() Config {
	addr := os.Getenv("MARKET_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat != "json" {
		logFormat = "console"
	}

	maxResults := 10
	if v, err := strconv.Atoi(os.Getenv("SEARCH_MAX_RESULTS")); err == nil && v > 0 {
		maxResults = v
	}

	return Config{
		Addr:        addr,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		LogLevel:    logLevel,
		LogFormat:   logFormat,
		RulesPath:   os.Getenv("SEARCH_RULES_PATH"),
		MaxResults:  maxResults,
		AllowReset:  os.Getenv("ALLOW_RESET_PRODUCTS") == "1",

		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}
}
