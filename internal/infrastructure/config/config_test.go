package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/pdv-mesas/internal/domain/table"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"APP_PORT", "API_BASE_PATH", "APP_DEMO", "TABLE_RELEASE_POLICY", "BLOCK_CASH_SHORTFALL",
		"OPERATION_TIMEOUT_SECONDS", "LOCK_TTL_SECONDS", "CORS_ALLOWED_ORIGINS", "REDIS_ADDR", "REDIS_DB",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8084", cfg.Port)
	assert.Equal(t, "/api/v1", cfg.BasePath)
	assert.False(t, cfg.Demo)
	assert.Equal(t, table.StatusFree, cfg.ReleasePolicy)
	assert.True(t, cfg.BlockCashShortfall)
	assert.Equal(t, 5*time.Second, cfg.OperationTimeout)
	assert.Equal(t, 10*time.Second, cfg.LockTTL)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TABLE_RELEASE_POLICY", "cleaning")
	t.Setenv("BLOCK_CASH_SHORTFALL", "false")
	t.Setenv("OPERATION_TIMEOUT_SECONDS", "2")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.local, http://b.local")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, table.StatusCleaning, cfg.ReleasePolicy)
	assert.False(t, cfg.BlockCashShortfall)
	assert.Equal(t, 2*time.Second, cfg.OperationTimeout)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.AllowedOrigins)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"TABLE_RELEASE_POLICY":      "occupied",
		"BLOCK_CASH_SHORTFALL":      "talvez",
		"OPERATION_TIMEOUT_SECONDS": "0",
		"LOCK_TTL_SECONDS":          "dez",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
