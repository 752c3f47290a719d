// Package config handles the rdw CLI configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	dirPermissions  = 0o700 // Owner-only access for security
	filePermissions = 0o600 // Read/write owner only
)

// Config is the rdw CLI configuration.
type Config struct {
	BaseURL        string `yaml:"baseUrl"`
	LoginURL       string `yaml:"loginUrl"`
	TokenPageURL   string `yaml:"tokenPageUrl"`
	Username       string `yaml:"username,omitempty"`
	CachePath      string `yaml:"cachePath,omitempty"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		BaseURL:        "https://api.real-debrid.com/rest/1.0",
		LoginURL:       "https://real-debrid.com/ajax/login.php",
		TokenPageURL:   "https://real-debrid.com/apitoken",
		TimeoutSeconds: 10,
	}
}

// Path returns the default configuration file location.
func Path() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "rdw", "config.yaml"), nil
}

// Load reads the configuration at path, returning defaults when the file
// does not exist. Unset fields fall back to their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	defaults := Default()
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	if cfg.LoginURL == "" {
		cfg.LoginURL = defaults.LoginURL
	}
	if cfg.TokenPageURL == "" {
		cfg.TokenPageURL = defaults.TokenPageURL
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = defaults.TimeoutSeconds
	}

	return cfg, nil
}

// Save writes the configuration to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
