package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.App.StorageDriver)
	assert.True(t, cfg.Warehouse.RackCeiling.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, 3, cfg.Warehouse.NumberRetries)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_LimiteDelRackDesdeEntorno(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("WAREHOUSE_RACK_CEILING", "450.5")
	t.Setenv("WAREHOUSE_NUMBER_RETRIES", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Warehouse.RackCeiling.Equal(decimal.RequireFromString("450.5")))
	assert.Equal(t, 5, cfg.Warehouse.NumberRetries)
}

func TestLoad_Invalidos(t *testing.T) {
	cases := map[string]map[string]string{
		"driver desconocido":  {"STORAGE_DRIVER": "mongo"},
		"limite no numerico":  {"STORAGE_DRIVER": "memory", "WAREHOUSE_RACK_CEILING": "mucho"},
		"limite en cero":      {"STORAGE_DRIVER": "memory", "WAREHOUSE_RACK_CEILING": "0"},
		"sin secreto en prod": {"STORAGE_DRIVER": "memory", "APP_ENV": "production", "JWT_SECRET": ""},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss", DBName: "almacen", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss@db:5432/almacen?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}

func TestLoadFixture(t *testing.T) {
	type fixture struct {
		Items []struct {
			Code string `mapstructure:"code"`
			Qty  int    `mapstructure:"qty"`
		} `mapstructure:"items"`
	}
	path := filepath.Join(t.TempDir(), "catalogo.yml")
	require.NoError(t, os.WriteFile(path, []byte("items:\n  - code: T-01\n    qty: 4\n"), 0o600))

	var out fixture
	require.NoError(t, LoadFixture(path, &out))
	require.Len(t, out.Items, 1)
	assert.Equal(t, "T-01", out.Items[0].Code)
	assert.Equal(t, 4, out.Items[0].Qty)

	assert.Error(t, LoadFixture(filepath.Join(t.TempDir(), "no-existe.yaml"), &out))
}
