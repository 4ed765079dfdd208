// Package config handles loading and validation of reportgc configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the reportgc configuration file.
type Config struct {
	Client      string        `yaml:"client"`
	Environment string        `yaml:"environment"`
	Output      OutputConfig  `yaml:"output"`
	Publish     PublishConfig `yaml:"publish"`
}

// OutputConfig controls where and how reports are written.
type OutputConfig struct {
	Dir     string   `yaml:"dir"`
	Formats []string `yaml:"formats"`
}

// PublishConfig controls optional S3 publication of rendered reports.
type PublishConfig struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
	Region string `yaml:"region"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:     "data",
			Formats: []string{"json"},
		},
	}
}

// Load reads and validates a configuration file, applying defaults for
// omitted fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 - user-specified config path
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir must not be empty")
	}

	if len(c.Output.Formats) == 0 {
		return fmt.Errorf("output.formats must name at least one format")
	}

	if c.Publish.Bucket == "" && c.Publish.Prefix != "" {
		return fmt.Errorf("publish.prefix set without publish.bucket")
	}

	return nil
}

// PublishEnabled reports whether reports should be uploaded after
// generation.
func (c *Config) PublishEnabled() bool {
	return c.Publish.Bucket != ""
}
