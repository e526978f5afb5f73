package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("ADMIN_EMAILS", "")
	t.Setenv("SESSION_TTL_HOURS", "")
	t.Setenv("TRUSTED_PROXIES", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 168, cfg.SessionTTLHours)
	assert.Empty(t, cfg.AdminEmails)
	assert.Empty(t, cfg.TrustedProxies, "no proxy is trusted unless configured")
	assert.False(t, cfg.CookieSecure)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("ADMIN_EMAILS", " root@example.com, ,ops@example.com ")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("RATE_LIMIT_PER_MIN", "nope")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 127.0.0.1")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, []string{"root@example.com", "ops@example.com"}, cfg.AdminEmails)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.TrustedProxies)
	assert.Equal(t, 0, cfg.RateLimitPerMin)
}
