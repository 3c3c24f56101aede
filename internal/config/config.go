package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abgdnv/cartkeeper/pkg/config"
	"github.com/abgdnv/cartkeeper/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

// AppName prefixes environment variables (CART_...) and names the data directory.
const AppName = "cart"

type Config struct {
	Storage  config.StorageConfig  `koanf:"storage"`
	Log      config.LogConfig      `koanf:"log"`
	Currency CurrencyConfig        `koanf:"currency"`
	Catalog  CatalogConfig         `koanf:"catalog"`
	Shutdown config.ShutdownConfig `koanf:"shutdown"`
}

// CurrencyConfig controls how amounts are shown to the user.
type CurrencyConfig struct {
	Symbol string `koanf:"symbol"`
}

// CatalogConfig lists the products offered for "add to cart".
type CatalogConfig struct {
	Products []ProductConfig `koanf:"products"`
}

// ProductConfig keeps the price as text; it is validated when the product is added.
type ProductConfig struct {
	Name  string `koanf:"name"`
	Price string `koanf:"price"`
}

// Load reads the configuration for the cart application.
// configFile may be empty to use config.yaml in the working directory.
func Load(configFile string) (*Config, error) {
	return configloader.Load[*Config](AppName, configloader.Options{
		ConfigFile: configFile,
		Defaults:   Defaults(),
	})
}

// Defaults returns the built-in configuration as dot-delimited keys.
func Defaults() map[string]any {
	dataDir := defaultDataDir()
	return map[string]any{
		"storage.driver":   config.StorageDriverFile,
		"storage.path":     filepath.Join(dataDir, "cart.json"),
		"storage.key":      "cart",
		"storage.timeout":  "5s",
		"log.level":        "info",
		"log.file":         filepath.Join(dataDir, "cart.log"),
		"currency.symbol":  "$",
		"shutdown.timeout": "5s",
		"catalog.products": []any{
			map[string]any{"name": "Widget", "price": "9.99"},
			map[string]any{"name": "Gadget", "price": "4.50"},
			map[string]any{"name": "Gizmo", "price": "24.00"},
			map[string]any{"name": "Doohickey", "price": "1.25"},
		},
	}
}

// defaultDataDir is <user config dir>/cartkeeper, or the working directory if that cannot be resolved.
func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "cartkeeper")
}

func (c *Config) String() string {
	var b strings.Builder

	b.WriteString(c.Storage.String())
	b.WriteString(c.Log.String())

	b.WriteString("\n--- Catalog ---\n")
	b.WriteString(fmt.Sprintf("  currency.symbol: %s\n", c.Currency.Symbol))
	b.WriteString(fmt.Sprintf("  catalog.products: %d\n", len(c.Catalog.Products)))

	b.WriteString(c.Shutdown.String())

	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.Shutdown.Validate(); err != nil {
		return err
	}
	if len(c.Catalog.Products) == 0 {
		return fmt.Errorf("catalog has no products")
	}
	return nil
}
