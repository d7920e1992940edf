// Package config loads gocheckout settings from defaults, an optional YAML file and
// environment overrides, in that order.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Environment variables read by Load
const (
	EnvConfigFile       = "CHECKOUT_CONFIG"
	EnvDBPath           = "CHECKOUT_DB_PATH"
	EnvLogMode          = "CHECKOUT_LOG_MODE"
	EnvProductCacheSize = "CHECKOUT_PRODUCT_CACHE_SIZE"
	EnvDefaultHandlers  = "CHECKOUT_DEFAULT_HANDLERS"
)

const (
	DefaultDBPath           = "checkout.db"
	DefaultLogMode          = "production"
	DefaultProductCacheSize = 1024
)

type Config struct {
	DB       DBConfig       `yaml:"db"`
	Log      LogConfig      `yaml:"log"`
	Handlers HandlersConfig `yaml:"handlers"`
}

type DBConfig struct {
	Path             string `yaml:"path"`
	ProductCacheSize int    `yaml:"product_cache_size"`
}

type LogConfig struct {
	Mode string `yaml:"mode"`
}

// HandlersConfig controls which event handlers are registered at startup
type HandlersConfig struct {
	Defaults bool `yaml:"defaults"`
}

// Default returns the configuration used when nothing else is set
func Default() *Config {
	return &Config{
		DB: DBConfig{
			Path:             DefaultDBPath,
			ProductCacheSize: DefaultProductCacheSize,
		},
		Log:      LogConfig{Mode: DefaultLogMode},
		Handlers: HandlersConfig{Defaults: true},
	}
}

// Load builds the configuration. The YAML file named by CHECKOUT_CONFIG is optional;
// when set it must exist.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads path on top of the defaults without looking at the environment
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	// an empty file leaves the defaults untouched
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDBPath); v != "" {
		c.DB.Path = v
	}
	if v := os.Getenv(EnvLogMode); v != "" {
		c.Log.Mode = v
	}
	if v := os.Getenv(EnvProductCacheSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvProductCacheSize, v, err)
		}
		c.DB.ProductCacheSize = n
	}
	if v := os.Getenv(EnvDefaultHandlers); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvDefaultHandlers, v, err)
		}
		c.Handlers.Defaults = b
	}
	return nil
}

// Validate rejects values the rest of the program cannot work with
func (c *Config) Validate() error {
	var errs []error
	if c.DB.Path == "" {
		errs = append(errs, errors.New("db.path must not be empty"))
	}
	if c.DB.ProductCacheSize < 0 {
		errs = append(errs, fmt.Errorf("db.product_cache_size must be >= 0, got %d", c.DB.ProductCacheSize))
	}
	switch c.Log.Mode {
	case "development", "production":
	default:
		errs = append(errs, fmt.Errorf("log.mode must be development or production, got %q", c.Log.Mode))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
