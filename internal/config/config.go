// Package config loads server settings from the environment.
package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DBPath          string
	ExchangeRateURL string
	RateCacheTTL    time.Duration
	HTTPTimeout     time.Duration
}

// Load reads an optional .env file and then the environment.
// Variables already set in the environment win over .env entries.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to read .env file", "error", err)
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		DBPath:          getEnv("DB_PATH", "./data/splitbetter.db"),
		ExchangeRateURL: getEnv("EXCHANGE_RATE_URL", "https://api.exchangerate-api.com/v4"),
		RateCacheTTL:    getDuration("RATE_CACHE_TTL", time.Hour),
		HTTPTimeout:     getDuration("HTTP_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("Invalid duration, using default", "key", key, "value", value, "default", fallback)
		return fallback
	}
	return d
}
