// Package config loads ecckit settings from an optional JSON or YAML file and
// ECCKIT_* environment variables, in that order of precedence (environment
// wins).
package config

import (
	"fmt"
	"runtime"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"

	"github.com/mahdiidarabi/ecckit/internal/logging"
)

// Networks
const (
	MainNet = "mainnet"
	TestNet = "testnet"
)

// Record formats understood by batch verification
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "ECCKIT"

// Config holds the settings shared by the ecckit commands.
type Config struct {
	Network     string `mapstructure:"network" envconfig:"NETWORK"`
	Compressed  bool   `mapstructure:"compressed" envconfig:"COMPRESSED"`
	LogLevel    string `mapstructure:"log_level" envconfig:"LOG_LEVEL"`
	LogFile     string `mapstructure:"log_file" envconfig:"LOG_FILE"`
	Development bool   `mapstructure:"development" envconfig:"DEVELOPMENT"`
	Workers     int    `mapstructure:"workers" envconfig:"WORKERS"`
	Format      string `mapstructure:"format" envconfig:"FORMAT"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Network:    MainNet,
		Compressed: true,
		LogLevel:   logging.WarnLevel,
		LogFile:    "stderr",
		Workers:    0,
		Format:     FormatJSON,
	}
}

// Load builds a Config from the defaults, the file at path (skipped when path
// is empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		v := viper.New()
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := v.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	// Fields carry no envconfig defaults, so unset variables leave the file
	// values alone.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to process env vars: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Network {
	case MainNet, TestNet:
	default:
		return fmt.Errorf("unknown network %q", c.Network)
	}

	switch c.Format {
	case FormatJSON, FormatCSV:
	default:
		return fmt.Errorf("unknown record format %q", c.Format)
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Testnet reports whether keys should be encoded for testnet.
func (c *Config) Testnet() bool {
	return c.Network == TestNet
}

// WorkerCount returns Workers, or the number of CPUs when it is zero.
func (c *Config) WorkerCount() int {
	if c.Workers == 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

// LogConfig returns the logger settings.
func (c *Config) LogConfig() *logging.LogConfig {
	return &logging.LogConfig{
		Level:       c.LogLevel,
		OutputPath:  c.LogFile,
		Development: c.Development,
	}
}
