package config_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/pkg/config"
)

func TestDefaults(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, config.StoreDriverPostgres, cfg.App.StoreDriver)
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.Equal(t, 2, cfg.DB.MinConns)
	assert.True(t, cfg.DB.ForceIPv4)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 14, cfg.Ledger.WasteReportDays)
	assert.Equal(t, "0.1", cfg.Ledger.LowStockRatio.String())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestOverrides(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "Memory")
	v.Set("DB_MAX_CONNS", "5")
	v.Set("DB_AUTO_MIGRATE", "false")
	v.Set("LEDGER_WASTE_REPORT_DAYS", "30")
	v.Set("LEDGER_LOW_STOCK_RATIO", "0.25")
	v.Set("HTTP_PORT", 9000)

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, config.StoreDriverMemory, cfg.App.StoreDriver)
	assert.Equal(t, 5, cfg.DB.MaxConns)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 30, cfg.Ledger.WasteReportDays)
	assert.Equal(t, "0.25", cfg.Ledger.LowStockRatio.String())
	assert.Equal(t, 9000, cfg.HTTP.Port)
}

func TestInvalidValues(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "sqlite")
	_, err := config.FromViper(v)
	require.Error(t, err)

	v = viper.New()
	v.Set("LEDGER_LOW_STOCK_RATIO", "abc")
	_, err = config.FromViper(v)
	require.Error(t, err)
}

func TestDSN_EscapesPassword(t *testing.T) {
	db := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/w", DBName: "ledger", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fw@db:5432/ledger?sslmode=disable", db.DSN())

	db.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", db.ConnectionString())
}
