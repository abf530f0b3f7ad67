package main

import (
	"fmt"
	"strings"

	"github.com/transientvariable/nativefs-go"

	"gopkg.in/yaml.v3"
)

const (
	defaultLogLevel = "error"
)

var logLevels = []string{"trace", "debug", "info", "warn", "error"}

// Config represents the contents of a nativefs configuration file.
type Config struct {
	LogLevel   string `yaml:"log_level,omitempty"`
	MaxWorkers int    `yaml:"max_workers,omitempty"`
}

// DefaultConfig returns the configuration used when no file is provided.
func DefaultConfig() Config {
	return Config{LogLevel: defaultLogLevel}
}

// LoadConfig reads the YAML configuration file at path. Unset values keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	content, err := nativefs.ReadFile(path, nativefs.DefaultEncoding)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal([]byte(content), &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	return cfg, cfg.Validate()
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if !validLogLevel(c.LogLevel) {
		return fmt.Errorf("config: log_level must be one of %s, got %q", strings.Join(logLevels, ", "), c.LogLevel)
	}

	if c.MaxWorkers < 0 {
		return fmt.Errorf("config: max_workers must not be negative, got %d", c.MaxWorkers)
	}
	return nil
}

func validLogLevel(level string) bool {
	for _, l := range logLevels {
		if l == level {
			return true
		}
	}
	return false
}
