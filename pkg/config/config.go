// Package config reads tool configuration from environment variables.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all billsplit configuration. Everything has a sensible
// default; environment variables only exist to override behavior without
// flags, e.g. in a wrapper script.
type Config struct {
	// Carrier is the default carrier parser when -carrier is not given.
	Carrier string
	// ToleranceCents is the reconciliation slop accepted when line totals
	// are compared against the bill total.
	ToleranceCents int
	// LogLevel is the slog level name: debug, info, warn or error.
	LogLevel slog.Level
}

// Load reads configuration from the environment, loading a .env file first
// when one is present in the working directory.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Carrier:        getEnv("BILLSPLIT_CARRIER", "tmobile"),
		ToleranceCents: getEnvAsInt("BILLSPLIT_TOLERANCE_CENTS", 2),
		LogLevel:       parseLevel(getEnv("LOG_LEVEL", "info")),
	}
}

func parseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
