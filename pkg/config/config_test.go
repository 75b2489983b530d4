package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "MOVE", cfg.Ledger.DefaultEventType)
	assert.Equal(t, "POSTED", cfg.Ledger.DefaultStatus)
	assert.Equal(t, 100, cfg.Ledger.ListDefaultLimit)
	assert.Equal(t, 500, cfg.Ledger.ListMaxLimit)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Empty(t, cfg.Telemetry.Endpoint)
}

func TestLoad_DesdeEntorno(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("LEDGER_DEFAULT_STATUS", "draft")
	t.Setenv("LEDGER_LIST_MAX_LIMIT", "1000")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "DRAFT", cfg.Ledger.DefaultStatus)
	assert.Equal(t, 1000, cfg.Ledger.ListMaxLimit)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORAGE_DRIVER", "sqlite")

	_, err := Load()
	assert.ErrorContains(t, err, "STORAGE_DRIVER")
}

func TestValidate_LimitesInconsistentes(t *testing.T) {
	cfg := &Config{
		Storage: StorageConfig{Driver: DriverMemory},
		Ledger:  LedgerConfig{DefaultEventType: "MOVE", DefaultStatus: "POSTED", ListDefaultLimit: 50, ListMaxLimit: 10},
	}
	assert.Error(t, cfg.Validate())
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "ledger", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/ledger?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
