package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("APP_HOST", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("MIGRATIONS_DIR", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, ":8080", cfg.AppHost)
	assert.Equal(t, 120*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "./migrations", cfg.MigrationsDir)
	assert.Error(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_HOST", "0.0.0.0:9000")
	t.Setenv("DATABASE_URL", "postgres://tracker@localhost/tracker?sslmode=disable")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("REQUEST_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "0.0.0.0:9000", cfg.AppHost)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("TOKEN_TTL", "forever")

	_, err := Load()
	assert.Error(t, err)
}
