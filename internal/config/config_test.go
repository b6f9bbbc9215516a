package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mendelian/mendel/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, uint64(100_000), cfg.MaxSims)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Empty(t, cfg.RedisURL)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("MENDEL_MAX_SIMS", "12345")
	t.Setenv("MENDEL_LISTEN_ADDR", ":9999")
	t.Setenv("MENDEL_REDIS_URL", "redis://localhost:6379/0")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, uint64(12345), cfg.MaxSims)
	assert.Equal(t, ":9999", cfg.ListenAddr)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("MENDEL_MAX_SIMS", "not-a-number")
	_, err := config.Load()
	assert.Error(t, err)
}
