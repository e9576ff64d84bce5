// Package cliconfig stores the storefront CLI settings.
package cliconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// DefaultServerURL is used when neither the config file nor the environment names a server.
const DefaultServerURL = "http://localhost:8080"

// ServerURLEnv overrides the configured server URL.
const ServerURLEnv = "SEACATERING_SERVER_URL"

// Config holds the CLI configuration
type Config struct {
	// Storefront API base URL
	ServerURL string `json:"server_url"`

	// Base URL the terminal checkout appends the payment token to
	CheckoutURL string `json:"checkout_url,omitempty"`
}

// Dir returns the CLI config directory, ~/.seacatering.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".seacatering"), nil
}

// Load loads the configuration from the given file path
func Load(path string) (*Config, error) {
	// If config file doesn't exist, return default config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{ServerURL: DefaultServerURL}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}
	return &cfg, nil
}

// Save saves the configuration to the given file path
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ResolveServerURL applies the precedence flag, then environment, then file.
func (c *Config) ResolveServerURL(flag string) string {
	if v := strings.TrimSpace(flag); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv(ServerURLEnv)); v != "" {
		return v
	}
	return c.ServerURL
}
