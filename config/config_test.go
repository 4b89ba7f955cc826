package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/ErlanBelekov/job-tracker/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "config-test-secret-at-least-32-chars"

func setRequired(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir()) // no stray .env
	t.Setenv("DATABASE_URL", "sqlite://:memory:")
	t.Setenv("JWT_SECRET", secret)
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "9090", cfg.MetricsPort)
	assert.Equal(t, 30*24*time.Hour, cfg.JWTLifetime.Duration())
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 100, cfg.RateLimitRequests)
	assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, "@every 1m", cfg.StatsCron)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_LIFETIME", "12h")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 12*time.Hour, cfg.JWTLifetime.Duration())
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, []string{"10.0.0.1"}, cfg.TrustedProxies)
}

func TestLoad_Rejects(t *testing.T) {
	tests := map[string]map[string]string{
		"short secret":     {"JWT_SECRET": "too-short"},
		"bad lifetime":     {"JWT_LIFETIME": "forever"},
		"bad env":          {"ENV": "qa"},
		"bad log level":    {"LOG_LEVEL": "trace"},
		"zero rate limit":  {"RATE_LIMIT_REQUESTS": "0"},
		"missing database": {"DATABASE_URL": ""},
	}

	for name, vars := range tests {
		t.Run(name, func(t *testing.T) {
			setRequired(t)
			for k, v := range vars {
				t.Setenv(k, v)
			}

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
