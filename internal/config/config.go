package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL   string
	APIToken     string
	RedisURL     string
	QuizCacheTTL time.Duration
	HTTPTimeout  time.Duration
	Environment  string
}

func LoadConfig() (*Config, error) {
	// A missing .env file is fine; real deployments inject the environment.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return &Config{
		APIBaseURL:   getEnv("API_BASE_URL", "http://localhost:4000"),
		APIToken:     getEnv("API_TOKEN", "dev-token"),
		RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379"),
		QuizCacheTTL: getDurationEnv("QUIZ_CACHE_TTL", 5*time.Minute),
		HTTPTimeout:  getDurationEnv("HTTP_TIMEOUT", 15*time.Second),
		Environment:  getEnv("ENVIRONMENT", "development"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
