package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	LogLevel string
	Env      string

	// DatabaseURL and JWTSecret are the two connection parameters the
	// service cannot start without.
	DatabaseURL string
	JWTSecret   string
	TokenTTL    time.Duration

	RedisURL string
}

// LoadConfig reads the environment, after merging an optional .env file.
// A missing DATABASE_URL or JWT_SECRET is an error.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	ttl, err := time.ParseDuration(GetEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("parse TOKEN_TTL: %w", err)
	}

	cfg := &Config{
		Port:        GetEnv("PORT", "8081"),
		DatabaseURL: GetEnv("DATABASE_URL", ""),
		JWTSecret:   GetEnv("JWT_SECRET", ""),
		TokenTTL:    ttl,
		RedisURL:    GetEnv("REDIS_URL", "redis://localhost:6379"),
		Env:         GetEnv("ENV", "development"),
		LogLevel:    GetEnv("LOG_LEVEL", "info"),
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
