package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ValidateTimeout != 25*time.Second {
		t.Errorf("ValidateTimeout = %s, want 25s", cfg.ValidateTimeout)
	}
	if cfg.ServerURL == "" {
		t.Error("default server URL empty")
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "server_url: https://staging.lingua.example\ntarget_language: fr\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerURL != "https://staging.lingua.example" {
		t.Errorf("ServerURL = %s", cfg.ServerURL)
	}
	if cfg.TargetLanguage != "fr" {
		t.Errorf("TargetLanguage = %s, want fr", cfg.TargetLanguage)
	}
	// Untouched keys keep their defaults.
	if cfg.NativeLanguage != "en" {
		t.Errorf("NativeLanguage = %s, want default en", cfg.NativeLanguage)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("server_url: https://file.example\n"), 0o644)
	t.Setenv("LINGUA_SERVER", "https://env.example")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerURL != "https://env.example" {
		t.Errorf("ServerURL = %s, want env override", cfg.ServerURL)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte(":\n\t:::"), 0o644)

	if _, err := Load(path); err == nil {
		t.Error("malformed YAML accepted")
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}

	cfg.ServerURL = ""
	if err := cfg.Validate(); err == nil {
		t.Error("empty server_url accepted")
	}

	cfg = DefaultConfig()
	cfg.TargetLanguage = ""
	if err := cfg.Validate(); err == nil {
		t.Error("empty target_language accepted")
	}
}
