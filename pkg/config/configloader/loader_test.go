package configloader

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Storage struct {
		Driver  string        `koanf:"driver"`
		Path    string        `koanf:"path"`
		Timeout time.Duration `koanf:"timeout"`
	} `koanf:"storage"`
	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`
}

func (c *testConfig) Validate() error {
	if c.Storage.Driver == "" {
		return fmt.Errorf("storage driver is required")
	}
	return nil
}

func defaults() map[string]any {
	return map[string]any{
		"storage.driver":  "file",
		"storage.path":    "cart.json",
		"storage.timeout": "5s",
		"log.level":       "info",
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Layering(t *testing.T) {
	testCases := []struct {
		name       string
		yaml       string
		dotenv     string
		env        map[string]string
		wantDriver string
		wantPath   string
		wantLevel  string
	}{
		{
			name:       "defaults only",
			wantDriver: "file",
			wantPath:   "cart.json",
			wantLevel:  "info",
		},
		{
			name:       "yaml overrides defaults",
			yaml:       "storage:\n  driver: sqlite\n  path: cart.db\n",
			wantDriver: "sqlite",
			wantPath:   "cart.db",
			wantLevel:  "info",
		},
		{
			name:       "dotenv overrides yaml",
			yaml:       "log:\n  level: warn\n",
			dotenv:     "TESTAPP_LOG_LEVEL=debug\nUNRELATED=1\n",
			wantDriver: "file",
			wantPath:   "cart.json",
			wantLevel:  "debug",
		},
		{
			name:       "environment has the last word",
			yaml:       "storage:\n  driver: sqlite\n",
			dotenv:     "TESTAPP_STORAGE_DRIVER=file\n",
			env:        map[string]string{"TESTAPP_STORAGE_DRIVER": "memory"},
			wantDriver: "memory",
			wantPath:   "cart.json",
			wantLevel:  "info",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			dir := t.TempDir()
			t.Chdir(dir)
			if tc.yaml != "" {
				writeFile(t, dir, DefaultConfigFile, tc.yaml)
			}
			if tc.dotenv != "" {
				writeFile(t, dir, ".env", tc.dotenv)
			}
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			// when
			cfg, err := Load[*testConfig]("testapp", Options{Defaults: defaults()})

			// then
			require.NoError(t, err)
			assert.Equal(t, tc.wantDriver, cfg.Storage.Driver)
			assert.Equal(t, tc.wantPath, cfg.Storage.Path)
			assert.Equal(t, tc.wantLevel, cfg.Log.Level)
			assert.Equal(t, 5*time.Second, cfg.Storage.Timeout)
		})
	}
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "shop.yaml", "storage:\n  timeout: 2s\n")

	cfg, err := Load[*testConfig]("testapp", Options{ConfigFile: path, Defaults: defaults()})

	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.Storage.Timeout)
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name string
		opts func(dir string) Options
		yaml string
	}{
		{
			name: "explicit file missing",
			opts: func(dir string) Options {
				return Options{ConfigFile: filepath.Join(dir, "missing.yaml"), Defaults: defaults()}
			},
		},
		{
			name: "broken yaml",
			yaml: "storage: [unclosed\n",
			opts: func(string) Options { return Options{Defaults: defaults()} },
		},
		{
			name: "validation fails",
			opts: func(string) Options { return Options{} },
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Chdir(dir)
			if tc.yaml != "" {
				writeFile(t, dir, DefaultConfigFile, tc.yaml)
			}

			_, err := Load[*testConfig]("testapp", tc.opts(dir))

			assert.Error(t, err)
		})
	}
}
