package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	StorageDriverFile   = "file"
	StorageDriverSQLite = "sqlite"
	StorageDriverMemory = "memory"
)

type StorageConfig struct {
	Driver  string        `koanf:"driver"`
	Path    string        `koanf:"path"`
	Key     string        `koanf:"key"`
	Timeout time.Duration `koanf:"timeout"`
}

// String returns a string representation of the storage configuration.
func (c *StorageConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Storage ---\n")
	b.WriteString(fmt.Sprintf("  driver: %s\n", c.Driver))
	b.WriteString(fmt.Sprintf("  path: %s\n", c.Path))
	b.WriteString(fmt.Sprintf("  key: %s\n", c.Key))
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	return b.String()
}

func (c *StorageConfig) Validate() error {
	switch c.Driver {
	case StorageDriverFile, StorageDriverSQLite:
		if c.Path == "" {
			return fmt.Errorf("storage path is not configured for driver %s", c.Driver)
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("unknown storage driver: %q", c.Driver)
	}
	if c.Key == "" {
		return fmt.Errorf("storage key is not configured")
	}
	if c.Driver == StorageDriverSQLite && c.Timeout <= 0 {
		return fmt.Errorf("storage timeout is not configured")
	}
	return nil
}
