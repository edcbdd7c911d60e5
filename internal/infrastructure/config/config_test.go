package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 25, cfg.DatabaseMaxConns)
	assert.Equal(t, 5, cfg.DatabaseMinConns)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
	assert.Equal(t, 24*time.Hour, cfg.BalanceCacheTTL)
	assert.Equal(t, 8*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, "EXTERNAL", cfg.UpstreamChannel)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_MAX_CONNS", "50")
	t.Setenv("UPSTREAM_TIMEOUT", "2s")
	t.Setenv("UPSTREAM_TRACE_ID", "trace-abc")
	t.Setenv("AUTO_MIGRATE", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, 50, cfg.DatabaseMaxConns)
	assert.Equal(t, 2*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, "trace-abc", cfg.UpstreamTraceID)
	assert.False(t, cfg.AutoMigrate)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("UPSTREAM_TIMEOUT", "not-a-duration")

	_, err := Load()
	require.Error(t, err)
}
