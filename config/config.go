package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// HTTP
	HTTPAddr string

	// Auth
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int

	// Database
	DBPath string

	// Logging
	LogLevel string

	// Fixtures
	SeedDemoData bool
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var err error
	var errs []string // Collect validation errors

	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	cfg.JWTSecret = getEnv("JWT_SECRET", "")
	if cfg.JWTSecret == "" {
		errs = append(errs, "JWT_SECRET must be set")
	}

	ttlHours, err := getEnvAsIntRequired("TOKEN_TTL_HOURS", 168) // 7 days
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid TOKEN_TTL_HOURS: %v", err))
	} else if ttlHours <= 0 {
		errs = append(errs, "TOKEN_TTL_HOURS must be positive")
	}
	cfg.TokenTTL = time.Duration(ttlHours) * time.Hour

	cfg.BcryptCost, err = getEnvAsIntRequired("BCRYPT_COST", 10)
	if err != nil {
		errs = append(errs, fmt.Sprintf("invalid BCRYPT_COST: %v", err))
	}

	cfg.DBPath = getEnv("DB_PATH", "./data/journal.db")
	if cfg.DBPath == "" {
		errs = append(errs, "DB_PATH must be set")
	}

	cfg.LogLevel = getEnv("LOG_LEVEL", "INFO")

	cfg.SeedDemoData = getEnvAsBool("SEED_DEMO_DATA", false)

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return cfg, nil
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsIntRequired(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		// Use default if env var is not set at all
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		// Return error if env var is set but invalid
		return 0, fmt.Errorf("invalid integer value '%s' for key %s: %w", valueStr, key, err)
	}
	return value, nil
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
