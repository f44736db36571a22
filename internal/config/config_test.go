package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/me/evento/pkg/api"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerURL != api.DefaultBaseURL {
		t.Errorf("ServerURL = %q, want default", cfg.ServerURL)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("log defaults = %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "server_url: https://events.example.com\nlog_level: debug\ntimeout_seconds: 5\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerURL != "https://events.example.com" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.TimeoutSeconds != 5 {
		t.Errorf("TimeoutSeconds = %d", cfg.TimeoutSeconds)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server_url: https://from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("EVENTO_SERVER", "https://from-env")
	t.Setenv("EVENTO_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerURL != "https://from-env" {
		t.Errorf("ServerURL = %q, want env override", cfg.ServerURL)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want env override", cfg.LogLevel)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server_url: [broken\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load accepted malformed YAML")
	}
}

func TestAPIConfig(t *testing.T) {
	cfg := Default()
	cfg.ServerURL = "https://api.example.com"
	cfg.TimeoutSeconds = 7

	apiCfg := cfg.APIConfig()
	if apiCfg.BaseURL != "https://api.example.com" {
		t.Errorf("BaseURL = %q", apiCfg.BaseURL)
	}
	if apiCfg.Timeout != 7*time.Second {
		t.Errorf("Timeout = %v", apiCfg.Timeout)
	}
}

func TestResolveDBPathExplicit(t *testing.T) {
	cfg := Default()
	cfg.DBPath = "/tmp/custom.db"

	path, err := cfg.ResolveDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path != "/tmp/custom.db" {
		t.Errorf("path = %q", path)
	}
}
