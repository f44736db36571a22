// Package config loads the evento client configuration from
// ~/.evento/config.yaml with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v3"

	"github.com/me/evento/pkg/api"
)

// Config holds the client configuration.
type Config struct {
	// ServerURL is the backend base URL.
	ServerURL string `yaml:"server_url" env:"EVENTO_SERVER"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"EVENTO_LOG_LEVEL"`
	// LogFormat is "text" or "json".
	LogFormat string `yaml:"log_format" env:"EVENTO_LOG_FORMAT"`
	// DBPath is the credential store location (":memory:" for ephemeral,
	// empty for the default ~/.evento/evento.db).
	DBPath string `yaml:"db_path" env:"EVENTO_DB"`
	// TimeoutSeconds is the per-request HTTP timeout.
	TimeoutSeconds int `yaml:"timeout_seconds" env:"EVENTO_TIMEOUT"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		ServerURL:      api.DefaultBaseURL,
		LogLevel:       "info",
		LogFormat:      "text",
		TimeoutSeconds: int(api.DefaultTimeout / time.Second),
	}
}

// DefaultPath returns ~/.evento/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, ".evento", "config.yaml"), nil
}

// Load reads the config file at path (default location when path is
// empty; a missing file is not an error) and applies environment
// overrides on top.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// No config file; defaults apply.
		default:
			return cfg, fmt.Errorf("read %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// APIConfig converts the client configuration into an API client config.
func (c Config) APIConfig() api.Config {
	cfg := api.DefaultConfig().WithBaseURL(c.ServerURL)
	if c.TimeoutSeconds > 0 {
		cfg = cfg.WithTimeout(time.Duration(c.TimeoutSeconds) * time.Second)
	}
	return cfg
}

// ResolveDBPath returns the credential store path, creating ~/.evento
// when falling back to the default location.
func (c Config) ResolveDBPath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	dir := filepath.Join(home, ".evento")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	return filepath.Join(dir, "evento.db"), nil
}
