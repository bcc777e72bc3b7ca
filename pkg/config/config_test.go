package config_test

import (
	"testing"

	"github.com/jhoicas/tiendas-api/pkg/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, config.BackendCSV, cfg.Storage.Backend)
	assert.Equal(t, "CSV/stores.csv", cfg.CSV.StoresPath)
	assert.Equal(t, "CSV/inventory.csv", cfg.CSV.InventoryPath)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "postgres://postgres:@localhost:5432/tiendas?sslmode=disable", cfg.DB.ConnectionString())
}

func TestFromViper_BackendBaseDeDatos(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_BACKEND", "Database")
	v.Set("DATABASE_URL", "postgres://u:p@db:5432/x")
	v.Set("DB_MAX_CONNS", "4")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, config.BackendDatabase, cfg.Storage.Backend)
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.DB.ConnectionString())
	assert.Equal(t, 4, cfg.DB.MaxConns)
}

func TestFromViper_BackendDesconocido(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_BACKEND", "mongo")
	_, err := config.FromViper(v)
	assert.Error(t, err)
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "h", Port: 5432, User: "u", Password: "p@ss/1", DBName: "d", SSLMode: "require"}
	assert.Equal(t, "postgres://u:p%40ss%2F1@h:5432/d?sslmode=require", c.DSN())
}
