package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load returns the defaults overlaid with the file at path. An empty path
// looks for ./scanline.yaml and uses the defaults alone if it is missing.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err != nil {
			return cfg, nil
		}
		path = DefaultFile
	}
	if err := loadFromFile(cfg, path); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultFile is the config picked up from the working directory.
const DefaultFile = "scanline.yaml"

// LoadFile reads a config from path without applying defaults first.
func LoadFile(path string) (*Config, error) {
	cfg := &Config{}
	if err := loadFromFile(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromFile merges the YAML at path into cfg.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// SaveTo writes the config to path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
