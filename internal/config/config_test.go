package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ADMIN_TOKEN_TTL", "")
	t.Setenv("STORAGE_MODE", "")
	t.Setenv("COOKIE_SECURE", "")
	t.Setenv("LOGIN_RATE_LIMIT", "")

	cfg := Load()

	assert.Equal(t, time.Hour, cfg.AdminTokenTTL)
	assert.Equal(t, 24*time.Hour, cfg.AuthorTokenTTL)
	assert.Equal(t, "local", cfg.StorageMode)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, 5, cfg.LoginRateLimit)
	assert.Equal(t, 15*time.Minute, cfg.LoginRateWindow)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ADMIN_TOKEN_TTL", "30m")
	t.Setenv("STORAGE_MODE", "S3")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("PUBLIC_BASE_URL", "https://cdn.example.com/")

	cfg := Load()

	assert.Equal(t, 30*time.Minute, cfg.AdminTokenTTL)
	assert.Equal(t, "s3", cfg.StorageMode)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "https://cdn.example.com", cfg.PublicBaseURL)
}

func TestGetDurationRejectsGarbage(t *testing.T) {
	t.Setenv("SOME_TTL", "soon")
	assert.Equal(t, time.Minute, getDuration("SOME_TTL", time.Minute))

	t.Setenv("SOME_TTL", "-5s")
	assert.Equal(t, time.Minute, getDuration("SOME_TTL", time.Minute))
}

func TestGetInt(t *testing.T) {
	t.Setenv("SOME_LIMIT", "12")
	assert.Equal(t, 12, getInt("SOME_LIMIT", 5))

	t.Setenv("SOME_LIMIT", "zero")
	assert.Equal(t, 5, getInt("SOME_LIMIT", 5))
}
