package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	ServerPort   int
	DatabasePath string
	JWTSecret    string
	TokenTTL     time.Duration
	CORSOrigin   string
	StatsCron    string // cron expression for the report stats snapshot
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	ttlStr := getEnv("TOKEN_TTL_HOURS", "168") // 7 days
	ttlHours, err := strconv.Atoi(ttlStr)
	if err != nil {
		return nil, err
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	return &Config{
		ServerPort:   port,
		DatabasePath: getEnv("DATABASE_PATH", "./campuswatch.db"),
		JWTSecret:    secret,
		TokenTTL:     time.Duration(ttlHours) * time.Hour,
		CORSOrigin:   getEnv("CORS_ORIGIN", "http://localhost:3000"),
		StatsCron:    getEnv("STATS_CRON", "@every 1m"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
