package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("SESSION_TTL", "")

	cfg := Load()
	assert.Equal(t, "dev-secret-change-me", cfg.Auth.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenExpiration)
	assert.Equal(t, 2*time.Hour, cfg.Interview.SessionTTL)
	assert.Empty(t, cfg.Redis.URL)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("JWT_EXPIRATION_HOURS", "1")
	t.Setenv("SESSION_TTL", "15m")
	t.Setenv("WORKER_CONCURRENCY", "not-a-number")
	t.Setenv("MURF_DEFAULT_VOICE", "en-US-samantha")
	t.Setenv("DB_NAME", "coach_test")

	cfg := Load()
	assert.Equal(t, "s", cfg.Auth.JWTSecret)
	assert.Equal(t, time.Hour, cfg.Auth.TokenExpiration)
	assert.Equal(t, 15*time.Minute, cfg.Interview.SessionTTL)
	assert.Equal(t, 3, cfg.Worker.Concurrency)
	assert.Equal(t, "en-US-samantha", cfg.Murf.DefaultVoice)
	assert.Contains(t, cfg.GetDatabaseDSN(), "dbname=coach_test")
}
