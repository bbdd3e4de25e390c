package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the menu client configuration.
type Config struct {
	ServerURL    string        `yaml:"server_url" json:"server_url"`
	OutputFormat string        `yaml:"output_format" json:"output_format"`
	Theme        string        `yaml:"theme" json:"theme"`
	LogFile      string        `yaml:"log_file" json:"log_file"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		ServerURL:    "http://localhost:8080/",
		OutputFormat: "table",
		Theme:        "classic",
	}
}

// DefaultPath returns the default config file path: ~/.menu/config.yaml
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".menu", "config.yaml")
	}
	return filepath.Join(home, ".menu", "config.yaml")
}

// Load reads the configuration from the given YAML file path.
// If the file does not exist, it returns Default() with no error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("parse config %s: timeout must not be negative", path)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg *Config) error {
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
