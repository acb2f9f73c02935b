// Package config loads and saves the engine configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the flat garland configuration.
type Config struct {
	Version         string `json:"version"`
	DBPath          string `json:"db_path,omitempty"`           // defaults to ~/.garland/garland.db
	ItemsServiceURL string `json:"items_service_url,omitempty"` // external items catalog
	PhotoServiceURL string `json:"photo_service_url,omitempty"` // external photo storage
	APIAddr         string `json:"api_addr,omitempty"`          // HTTP API listen address
	LockTimeoutSecs int    `json:"lock_timeout_secs,omitempty"` // per-deployment lock wait
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Version:         "1",
		ItemsServiceURL: "http://localhost:8091",
		PhotoServiceURL: "http://localhost:8092",
		APIAddr:         ":8090",
		LockTimeoutSecs: 3,
	}
}

// ConfigDir returns the directory holding config.json and the database.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".garland"), nil
}

// LoadConfig reads config.json from the given directory. Missing file is not
// an error: defaults are returned so the CLI works out of the box.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, "config.json")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes config.json to the given directory.
func SaveConfig(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
