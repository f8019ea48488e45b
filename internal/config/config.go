package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"todo-api/internal/store"
)

const MaxPageSize = 1000

type Config struct {
	DatabaseDriver string
	DatabaseURL    string
	JWTKey         string
	Port           string
	TokenTTL       time.Duration
	PageSize       int
	LogLevel       string
}

// Load reads the configuration from the environment, after merging in a
// .env file from the working directory if there is one.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseDriver: getenv("DATABASE_DRIVER", store.DriverPostgres),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTKey:         os.Getenv("JWT_KEY"),
		Port:           getenv("PORT", "8080"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.JWTKey == "" {
		return nil, fmt.Errorf("JWT_KEY environment variable is required")
	}
	if cfg.DatabaseDriver != store.DriverPostgres && cfg.DatabaseDriver != store.DriverSQLite {
		return nil, fmt.Errorf("DATABASE_DRIVER must be %q or %q, got %q", store.DriverPostgres, store.DriverSQLite, cfg.DatabaseDriver)
	}

	ttl, err := time.ParseDuration(getenv("TOKEN_TTL", "24h"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL must be a positive duration: %q", os.Getenv("TOKEN_TTL"))
	}
	cfg.TokenTTL = ttl

	pageSize, err := strconv.Atoi(getenv("PAGE_SIZE", "100"))
	if err != nil || pageSize < 1 || pageSize > MaxPageSize {
		return nil, fmt.Errorf("PAGE_SIZE must be between 1 and %d: %q", MaxPageSize, os.Getenv("PAGE_SIZE"))
	}
	cfg.PageSize = pageSize

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
