package config

import (
	"os"
	"strconv"
)

const (
	defaultDatabasePath   = "data/catalog.db"
	defaultPort           = "8080"
	defaultRateLimitRPS   = 2
	defaultRateLimitBurst = 4
)

type Config struct {
	// HTTP listen port, without the leading colon
	Port string

	// sqlite database file path
	DatabasePath string

	// per-IP rate limiter settings
	RateLimitRPS   int
	RateLimitBurst int
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvIntOrDefault(envVar string, defaultVal int) int {
	valStr := os.Getenv(envVar)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}

// LoadConfig reads configuration from the environment, falling back to
// defaults for anything unset
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:           getEnvOrDefault("PORT", defaultPort),
		DatabasePath:   getEnvOrDefault("DATABASE_PATH", defaultDatabasePath),
		RateLimitRPS:   getEnvIntOrDefault("RATE_LIMIT_RPS", defaultRateLimitRPS),
		RateLimitBurst: getEnvIntOrDefault("RATE_LIMIT_BURST", defaultRateLimitBurst),
	}
	return cfg, nil
}
