// Package config holds conform's tool settings: network timeout, color
// mode, and verbosity. Settings come from defaults, an optional
// .conform/config.yaml, and CLI flags, in increasing precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents conform configuration options.
type Config struct {
	// HTTPTimeout bounds each include fetch (0 = no timeout)
	HTTPTimeout time.Duration `yaml:"http_timeout"`

	// NoColor disables colored report output even on a TTY
	NoColor bool `yaml:"no_color"`

	// Verbose enables progress logging during resolution and checking
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		HTTPTimeout: 30 * time.Second,
		NoColor:     false,
		Verbose:     false,
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Durations are written as strings ("30s"); decode through a
	// temporary struct.
	type yamlConfig struct {
		HTTPTimeout string `yaml:"http_timeout"`
		NoColor     bool   `yaml:"no_color"`
		Verbose     bool   `yaml:"verbose"`
	}
	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.HTTPTimeout != "" {
		timeout, err := time.ParseDuration(yamlCfg.HTTPTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid http_timeout format %q: %w", yamlCfg.HTTPTimeout, err)
		}
		cfg.HTTPTimeout = timeout
	}
	if yamlCfg.NoColor {
		cfg.NoColor = true
	}
	if yamlCfg.Verbose {
		cfg.Verbose = true
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .conform/config.yaml in the
// specified directory, falling back to defaults when absent.
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ".conform", "config.yaml"))
}

// MergeWithFlags merges CLI flags into the configuration. Non-nil flag
// values override configuration values.
func (c *Config) MergeWithFlags(httpTimeout *time.Duration, noColor *bool, verbose *bool) {
	if httpTimeout != nil {
		c.HTTPTimeout = *httpTimeout
	}
	if noColor != nil {
		c.NoColor = *noColor
	}
	if verbose != nil {
		c.Verbose = *verbose
	}
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("http_timeout must be >= 0, got %v", c.HTTPTimeout)
	}
	return nil
}
