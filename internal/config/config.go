// Package config loads service configuration from the environment.
// A .env file in the working directory is loaded first when present.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the service configuration.
type Config struct {
	AppEnv   string
	LogLevel string
	Port     string

	Database DatabaseConfig
	Redis    RedisConfig

	// HideItemNameColumns drops item name columns when items are named by item name.
	HideItemNameColumns bool
}

// DatabaseConfig holds PostgreSQL settings.
type DatabaseConfig struct {
	URL              string
	MaxConns         int
	StatementTimeout time.Duration
}

// RedisConfig holds the optional global defaults cache settings.
// An empty Addr disables the cache.
type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	DefaultsTTL time.Duration
}

// Development reports whether the service runs in development mode.
func (c *Config) Development() bool {
	return c.AppEnv == "development"
}

// Load reads configuration from .env and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv reads configuration from environment variables only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Port:     getEnv("APP_PORT", "8080"),
		Database: DatabaseConfig{
			URL:              os.Getenv("DATABASE_URL"),
			MaxConns:         getEnvInt("DATABASE_MAX_CONNS", 10),
			StatementTimeout: getEnvDuration("DATABASE_STATEMENT_TIMEOUT", 30*time.Second),
		},
		Redis: RedisConfig{
			Addr:        os.Getenv("REDIS_ADDR"),
			Password:    os.Getenv("REDIS_PASSWORD"),
			DB:          getEnvInt("REDIS_DB", 0),
			DefaultsTTL: getEnvDuration("DEFAULTS_CACHE_TTL", 5*time.Minute),
		},
		HideItemNameColumns: getEnvBool("REPORT_HIDE_ITEM_NAME_COLUMNS", false),
	}

	if cfg.Database.URL == "" {
		return nil, errors.New("required environment variable DATABASE_URL not set")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if result, err := strconv.Atoi(value); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
