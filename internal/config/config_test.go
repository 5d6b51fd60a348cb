package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:4000", cfg.APIBaseURL)
	assert.Equal(t, "dev-token", cfg.APIToken)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, 5*time.Minute, cfg.QuizCacheTTL)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "development", cfg.Environment)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://quiz.example.com")
	t.Setenv("API_TOKEN", "secret")
	t.Setenv("QUIZ_CACHE_TTL", "90s")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://quiz.example.com", cfg.APIBaseURL)
	assert.Equal(t, "secret", cfg.APIToken)
	assert.Equal(t, 90*time.Second, cfg.QuizCacheTTL)
	assert.Equal(t, "production", cfg.Environment)
}

func TestGetDurationEnv(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "30")
	assert.Equal(t, 30*time.Second, getDurationEnv("HTTP_TIMEOUT", time.Second))

	t.Setenv("HTTP_TIMEOUT", "2m")
	assert.Equal(t, 2*time.Minute, getDurationEnv("HTTP_TIMEOUT", time.Second))

	t.Setenv("HTTP_TIMEOUT", "not-a-duration")
	assert.Equal(t, time.Second, getDurationEnv("HTTP_TIMEOUT", time.Second))
}
