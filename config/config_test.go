package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBType)
	assert.Equal(t, "./inventory.db", cfg.DBDSN)
	assert.Equal(t, 24, cfg.TokenTTLHours)
	assert.Equal(t, 5, cfg.LowStockThreshold)
	assert.False(t, cfg.SeedSampleData)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_TYPE", "mysql")
	t.Setenv("DB_DSN", "user:pass@tcp(localhost:3306)/inventory")
	t.Setenv("SEED_SAMPLE_DATA", "true")
	t.Setenv("TOKEN_TTL_HOURS", "72")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "mysql", cfg.DBType)
	assert.Equal(t, "user:pass@tcp(localhost:3306)/inventory", cfg.DBDSN)
	assert.True(t, cfg.SeedSampleData)
	assert.Equal(t, 72, cfg.TokenTTLHours)
}

func TestLoadRejectsUnknownDBType(t *testing.T) {
	t.Setenv("DB_TYPE", "postgres")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadClampsTokenTTL(t *testing.T) {
	t.Setenv("TOKEN_TTL_HOURS", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.TokenTTLHours)
}
