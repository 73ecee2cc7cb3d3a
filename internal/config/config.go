// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	"storage-planner/core/estimation"
	"storage-planner/core/types"
	"storage-planner/internal/errors"
	"storage-planner/internal/logging"
)

// EnvPrefix prefixes every environment override, e.g. STORAGE_PLANNER_CATALOG_PATH
const EnvPrefix = "STORAGE_PLANNER"

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" ignored:"true"`

	// Catalog selects the plan catalog
	Catalog CatalogConfig `json:"catalog"`

	// Estimation contains the storage rate table
	Estimation EstimationConfig `json:"estimation"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// CatalogConfig selects the plan catalog
type CatalogConfig struct {
	// Path is an HCL catalog file; empty uses the embedded catalog
	Path string `json:"path" split_words:"true"`
}

// EstimationConfig contains the per-minute storage rates
type EstimationConfig struct {
	// StandardGBPerMinute is the HD storage rate
	StandardGBPerMinute decimal.Decimal `json:"standard_gb_per_minute" split_words:"true"`

	// HighResGBPerMinute is the 4K storage rate
	HighResGBPerMinute decimal.Decimal `json:"high_res_gb_per_minute" split_words:"true"`
}

// Rates converts the configuration into an estimation rate table
func (e EstimationConfig) Rates() estimation.Rates {
	return estimation.Rates{
		StandardGBPerMinute: e.StandardGBPerMinute,
		HighResGBPerMinute:  e.HighResGBPerMinute,
	}
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format" split_words:"true" validate:"required,oneof=cli json markdown"`

	// DefaultPeriod is the billing period used when none is given
	DefaultPeriod string `json:"default_period" split_words:"true" validate:"required,oneof=monthly annual"`

	// NoColor disables ANSI colors in cli output
	NoColor bool `json:"no_color" split_words:"true"`
}

// Default returns a default configuration
func Default() *Config {
	rates := estimation.DefaultRates()
	return &Config{
		Version: "1.0",
		Estimation: EstimationConfig{
			StandardGBPerMinute: rates.StandardGBPerMinute,
			HighResGBPerMinute:  rates.HighResGBPerMinute,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
			DefaultPeriod: string(types.DefaultBillingPeriod),
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns $HOME/.storage-planner.json
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".storage-planner.json")
}

// Load loads configuration from a file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Wrap(errors.TypeConfig, "read config "+path, err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Parsing("decode config "+path, err)
	}

	return config, nil
}

// ApplyEnv overlays environment variables onto c. Variables from envFiles
// (or ./.env when none are given) are loaded first without overriding the
// real environment. Unset variables leave the existing value alone.
func ApplyEnv(c *Config, envFiles ...string) error {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return errors.Wrap(errors.TypeConfig, "load env files", err)
		}
	} else {
		_ = godotenv.Load()
	}

	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return errors.Wrap(errors.TypeConfig, "environment overrides", err)
	}
	return nil
}

var validate = validator.New()

// Validate checks enumerated fields and the rate table
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.TypeConfig, "invalid configuration", err)
	}
	return c.Estimation.Rates().Validate()
}

// Resolve loads path (if non-empty), applies environment overrides and
// validates the result
func Resolve(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return nil, err
		}
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
