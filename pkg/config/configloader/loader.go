package configloader

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Validator interface {
	Validate() error
}

// DefaultConfigFile is read when no config file is given.
const DefaultConfigFile = "config.yaml"

// Options control where Load looks for configuration.
type Options struct {
	// ConfigFile is the YAML file to read. A missing DefaultConfigFile is not an error,
	// a missing explicitly named file is.
	ConfigFile string
	// EnvFile is the dotenv file to read; defaults to ".env".
	EnvFile string
	// Defaults are loaded first, with the lowest priority. Keys are dot-delimited.
	Defaults map[string]any
}

// Load builds a T from, in increasing priority: defaults, the YAML config
// file, the .env file and the process environment. Environment keys carry the
// <APP_NAME>_ prefix, e.g. CART_STORAGE_DRIVER sets storage.driver.
func Load[T Validator](appName string, opts Options) (T, error) {
	var cfg T
	// Create a new Koanf instance
	k := koanf.New(".")

	configFile := opts.ConfigFile
	explicitFile := configFile != ""
	if !explicitFile {
		configFile = DefaultConfigFile
	}
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	envPrefix := fmt.Sprintf("%s_", strings.ToUpper(appName))

	// 0. Built-in defaults
	if len(opts.Defaults) > 0 {
		if err := k.Load(confmap.Provider(opts.Defaults, "."), nil); err != nil {
			return cfg, fmt.Errorf("error loading default config: %w", err)
		}
	}

	// 1. Load configuration from yaml file
	if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		if explicitFile || !os.IsNotExist(err) {
			return cfg, fmt.Errorf("error loading YAML config file '%s': %w", configFile, err)
		}
	}

	// 2. Load environment variables from .env file
	envTransformer := func(key string) string {
		key = strings.ToLower(key)
		key = strings.TrimPrefix(key, strings.ToLower(envPrefix))
		return strings.ReplaceAll(key, "_", ".")
	}
	if envFileMap, err := godotenv.Read(envFile); err == nil {
		envMap := make(map[string]any)
		for key, value := range envFileMap {
			if !strings.HasPrefix(strings.ToUpper(key), envPrefix) {
				continue
			}
			envMap[envTransformer(key)] = value
		}
		// Load the envMap into Koanf
		if err := k.Load(confmap.Provider(envMap, "."), nil); err != nil {
			log.Printf("WARN: error loading .env config: %v", err)
		}
	} else if !os.IsNotExist(err) {
		log.Printf("WARN: error reading .env file: %v", err)
	}

	// 3. Load environment variables from the system, the highest priority
	if err := k.Load(env.Provider(envPrefix, ".", envTransformer), nil); err != nil {
		log.Printf("WARN: error loading system env vars: %v", err)
	}

	// 4. Unmarshal the configuration into the Config struct
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// 5. Validate the configuration
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}
