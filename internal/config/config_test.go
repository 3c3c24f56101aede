package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/abgdnv/cartkeeper/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, config.StorageDriverFile, cfg.Storage.Driver)
	assert.Equal(t, "cart", cfg.Storage.Key)
	assert.Equal(t, "cart.json", filepath.Base(cfg.Storage.Path))
	assert.Equal(t, 5*time.Second, cfg.Shutdown.Timeout)
	assert.Equal(t, "$", cfg.Currency.Symbol)
	require.Len(t, cfg.Catalog.Products, 4)
	assert.Equal(t, ProductConfig{Name: "Widget", Price: "9.99"}, cfg.Catalog.Products[0])
	assert.Contains(t, cfg.String(), "catalog.products: 4")
}

func TestLoad_FromYAMLAndEnv(t *testing.T) {
	// given
	dir := t.TempDir()
	t.Chdir(dir)
	yaml := `storage:
  driver: sqlite
  path: shop.db
currency:
  symbol: "€"
catalog:
  products:
    - name: Lamp
      price: "19.90"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shop.yaml"), []byte(yaml), 0o644))
	t.Setenv("CART_LOG_LEVEL", "debug")
	t.Setenv("CART_STORAGE_KEY", "shop-cart")

	// when
	cfg, err := Load(filepath.Join(dir, "shop.yaml"))

	// then
	require.NoError(t, err)
	assert.Equal(t, config.StorageDriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "shop.db", cfg.Storage.Path)
	assert.Equal(t, "shop-cart", cfg.Storage.Key)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "€", cfg.Currency.Symbol)
	assert.Equal(t, []ProductConfig{{Name: "Lamp", Price: "19.90"}}, cfg.Catalog.Products)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Storage:  config.StorageConfig{Driver: config.StorageDriverMemory, Key: "cart"},
			Log:      config.LogConfig{Level: "info"},
			Catalog:  CatalogConfig{Products: []ProductConfig{{Name: "Widget", Price: "9.99"}}},
			Shutdown: config.ShutdownConfig{Timeout: time.Second},
		}
	}
	testCases := []struct {
		name      string
		mutate    func(c *Config)
		expectErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "bad storage", mutate: func(c *Config) { c.Storage.Driver = "s3" }, expectErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "loud" }, expectErr: true},
		{name: "no shutdown timeout", mutate: func(c *Config) { c.Shutdown.Timeout = 0 }, expectErr: true},
		{name: "empty catalog", mutate: func(c *Config) { c.Catalog.Products = nil }, expectErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
