package config_test

import (
	"testing"

	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PGSQL_URL", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("PORT", "")
	t.Setenv("IS_PRODUCTION", "")
	t.Setenv("RATE_LIMIT", "")

	cfg, err := config.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.IsProduction)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Equal(t, "file://migrations", cfg.MigrationsPath)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("PGSQL_URL", "postgres://ledger@localhost/ledger")
	t.Setenv("PORT", "9090")
	t.Setenv("IS_PRODUCTION", "true")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_ISSUER", "ledger-auth")
	t.Setenv("RATE_LIMIT", "10-S")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := config.LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "postgres://ledger@localhost/ledger", cfg.DatabaseURL)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, "ledger-auth", cfg.JWTIssuer)
	assert.Equal(t, "10-S", cfg.RateLimit)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("IS_PRODUCTION", "true")
	t.Setenv("PGSQL_URL", "")
	t.Setenv("JWT_SECRET", "")

	_, err := config.LoadConfig()

	require.Error(t, err)
	assert.ErrorContains(t, err, "PGSQL_URL is required")
	assert.ErrorContains(t, err, "JWT_SECRET is required")
}

func TestLoadConfig_InvalidRateLimit(t *testing.T) {
	t.Setenv("IS_PRODUCTION", "false")
	t.Setenv("RATE_LIMIT", "often")

	_, err := config.LoadConfig()

	assert.ErrorContains(t, err, "invalid RATE_LIMIT")
}
