package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"

	"github.com/GriffinCanCode/specval/internal/math/common"
	"github.com/GriffinCanCode/specval/internal/shared/utils"
)

// Config holds all application configuration.
type Config struct {
	Fixtures  FixtureConfig   `toml:"fixtures"`
	Precision PrecisionConfig `toml:"precision"`
	Logging   LogConfig       `toml:"logging"`
	Metrics   MetricsConfig   `toml:"metrics"`
}

// FixtureConfig selects the fixtures to regenerate.
type FixtureConfig struct {
	Dir     string `envconfig:"SPECVAL_FIXTURE_DIR" default:"." toml:"dir"`
	Pattern string `envconfig:"SPECVAL_PATTERN" default:"*.csv" toml:"pattern"`
	DryRun  bool   `envconfig:"SPECVAL_DRY_RUN" default:"false" toml:"dry_run"`
	Report  string `envconfig:"SPECVAL_REPORT_FILE" toml:"report"`
	// Workers bounds concurrent fixtures; 0 means GOMAXPROCS.
	Workers int    `envconfig:"SPECVAL_WORKERS" default:"0" toml:"workers"`
	Digest  string `envconfig:"SPECVAL_DIGEST" default:"sha256" toml:"digest"`
}

// PrecisionConfig holds output precision settings. The working precision is
// fixed at common.WorkingDigits.
type PrecisionConfig struct {
	OutputDigits int `envconfig:"SPECVAL_OUTPUT_DIGITS" default:"50" toml:"output_digits"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info" toml:"level"`
	Development bool   `envconfig:"LOG_DEV" default:"false" toml:"development"`
}

// MetricsConfig holds metrics output configuration.
type MetricsConfig struct {
	File string `envconfig:"SPECVAL_METRICS_FILE" toml:"file"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, cfg.Validate()
}

// LoadFile loads the environment configuration and overlays the TOML file at
// path. Keys absent from the file keep their environment or default value.
func LoadFile(path string) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Fixtures: FixtureConfig{
			Dir:     ".",
			Pattern: "*.csv",
			Digest:  string(utils.SHA256),
		},
		Precision: PrecisionConfig{
			OutputDigits: common.OutputDigits,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Precision.OutputDigits < 1 || c.Precision.OutputDigits > common.WorkingDigits {
		return fmt.Errorf("output digits %d outside [1, %d]", c.Precision.OutputDigits, common.WorkingDigits)
	}
	if c.Fixtures.Dir == "" {
		return fmt.Errorf("fixture directory is empty")
	}
	if c.Fixtures.Workers < 0 {
		return fmt.Errorf("workers %d is negative", c.Fixtures.Workers)
	}
	if _, err := utils.ParseHashAlgorithm(c.Fixtures.Digest); err != nil {
		return err
	}
	return nil
}

// Encode renders the configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}
