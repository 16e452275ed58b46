// Package config loads tagboard configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the main configuration.
type Config struct {
	// DataFile is the CSV file holding the resource records.
	DataFile string `yaml:"data_file"`
	// Listen is the dashboard server address.
	Listen string `yaml:"listen,omitempty"`
	// LowestN is how many records the lowest-completeness listing
	// returns.
	LowestN int `yaml:"lowest_n,omitempty"`
	// PreviewRows is how many rows record previews return.
	PreviewRows int `yaml:"preview_rows,omitempty"`
	Debug       bool `yaml:"debug,omitempty"`
}

// Default returns the built-in configuration defaults.
func Default() Config {
	return Config{
		Listen:      ":8080",
		LowestN:     10,
		PreviewRows: 5,
	}
}

// LoadConfig loads configuration from file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is intentional user input
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate ensures config has required fields.
func (c *Config) Validate() error {
	if c.DataFile == "" {
		return fmt.Errorf("data_file is required")
	}
	if c.LowestN <= 0 {
		return fmt.Errorf("lowest_n must be positive")
	}
	if c.PreviewRows <= 0 {
		return fmt.Errorf("preview_rows must be positive")
	}
	return nil
}
