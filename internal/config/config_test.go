package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 24*60, cfg.Auth.AccessTokenTTLMinutes)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.App.AllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.Redis.PaymentLockTTL())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("MIDTRANS_PRODUCTION", "true")
	t.Setenv("REDIS_PAYMENT_LOCK_SECONDS", "5")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.AllowedOrigins)
	assert.True(t, cfg.Payment.Production)
	assert.Equal(t, 5*time.Second, cfg.Redis.PaymentLockTTL())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
}

func TestLoadRejectsBadRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "one")
	_, err := Load()
	assert.Error(t, err)
}
