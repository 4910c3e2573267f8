// Package config loads service configuration from the environment. main
// loads a .env file first, so local development works without exported vars.
package config

import (
	"errors"
	"os"
	"time"
)

type Config struct {
	Port         string
	DatabaseDSN  string
	JWTSecret    string
	TokenTTL     time.Duration
	GoogleClient string
	RedisAddr    string
	CacheTTL     time.Duration
	KafkaTopic   string
}

// Load reads the environment. The JWT signing secret has no default: it is
// injected configuration, never a literal in the code.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}

	tokenTTL, err := durationEnv("TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := durationEnv("USER_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:         getEnv("PORT", "3001"),
		DatabaseDSN:  getEnv("DATABASE_DSN", "root:@tcp(127.0.0.1:3306)/movie-db?parseTime=true"),
		JWTSecret:    secret,
		TokenTTL:     tokenTTL,
		GoogleClient: os.Getenv("GOOGLE_CLIENT_ID"),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		CacheTTL:     cacheTTL,
		KafkaTopic:   getEnv("KAFKA_TOPIC", "user-topic"),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return time.ParseDuration(v)
}
