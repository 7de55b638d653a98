package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds user preferences, stored at ~/.glow/config.yaml.
type Config struct {
	ServerURL   string `yaml:"server_url" json:"server_url"`     // Glow server for remote persistence
	DefaultPage string `yaml:"default_page" json:"default_page"` // page opened on launch
	Theme       string `yaml:"theme" json:"theme"`               // "glow" or "dark"

	// Logging
	LogLevel   string `yaml:"log_level" json:"log_level"`
	LogFile    string `yaml:"log_file" json:"log_file"`
	LogConsole bool   `yaml:"log_console" json:"log_console"`
}

// Dir returns the Glow home directory (~/.glow).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".glow"), nil
}

// DefaultConfig returns default settings, with env overrides for
// logging the way the server deployment expects them.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	logPath := ""
	if home != "" {
		logPath = filepath.Join(home, ".glow", "logs", "glow.log")
	}
	return &Config{
		ServerURL:   getEnv("GLOW_SERVER_URL", ""),
		DefaultPage: "daily",
		Theme:       "glow",
		LogLevel:    getEnv("GLOW_LOG_LEVEL", "INFO"),
		LogFile:     getEnv("GLOW_LOG_FILE", logPath),
		LogConsole:  getEnv("GLOW_LOG_CONSOLE", "false") == "true",
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads ~/.glow/config.yaml, returning defaults when it does not
// exist yet.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, "config.yaml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the config back to ~/.glow/config.yaml.
func (c *Config) Save() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
