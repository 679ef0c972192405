// Package config loads client configuration from a YAML file with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all client configuration.
type Config struct {
	// ServerURL is the backend root URL.
	ServerURL string `yaml:"server_url"`

	// NativeLanguage and TargetLanguage select the language pair for
	// vocabulary generation.
	NativeLanguage string `yaml:"native_language"`
	TargetLanguage string `yaml:"target_language"`

	// RequestTimeout bounds a single HTTP round trip.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// ValidateTimeout is the session validation deadline, deliberately
	// shorter than RequestTimeout.
	ValidateTimeout time.Duration `yaml:"validate_timeout"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ServerURL:       "https://api.lingua.example",
		NativeLanguage:  "en",
		TargetLanguage:  "de",
		RequestTimeout:  60 * time.Second,
		ValidateTimeout: 25 * time.Second,
	}
}

// Load reads the config file at path on top of the defaults, then
// applies environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv overrides file values from LINGUA_* environment variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv("LINGUA_SERVER"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("LINGUA_NATIVE_LANGUAGE"); v != "" {
		cfg.NativeLanguage = v
	}
	if v := os.Getenv("LINGUA_TARGET_LANGUAGE"); v != "" {
		cfg.TargetLanguage = v
	}
}

// Validate checks the config is usable.
func (c Config) Validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("server_url is required")
	}
	if c.NativeLanguage == "" || c.TargetLanguage == "" {
		return fmt.Errorf("native_language and target_language are required")
	}
	return nil
}

// DefaultPath resolves the config file path:
// 1. LINGUA_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/lingua/config.yaml
// 3. ~/.config/lingua/config.yaml
func DefaultPath() (string, error) {
	if p := os.Getenv("LINGUA_CONFIG"); p != "" {
		return p, nil
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}

	return filepath.Join(configHome, "lingua", "config.yaml"), nil
}
