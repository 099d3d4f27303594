// Package config loads the client configuration from a TOML file with
// environment overrides for the values that differ per machine.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Server contains the API endpoint configuration.
type Server struct {
	URL            string `toml:"url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Storage contains local persistence configuration.
type Storage struct {
	DBPath string `toml:"db_path"`
}

// Sync tunes the save scheduler and retry policy.
type Sync struct {
	DebounceMs           int `toml:"debounce_ms"`
	MaxWaitMs            int `toml:"max_wait_ms"`
	MaxRetries           int `toml:"max_retries"`
	QueueMaxRetries      int `toml:"queue_max_retries"`
	ProbeIntervalSeconds int `toml:"probe_interval_seconds"`
}

// Log contains logging configuration.
type Log struct {
	Level string `toml:"level"`
}

// Config is the root of the client configuration file.
type Config struct {
	Server  Server  `toml:"server"`
	Storage Storage `toml:"storage"`
	Sync    Sync    `toml:"sync"`
	Log     Log     `toml:"log"`
}

// DefaultConfigPath returns the per-user config file location.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "writersroom", "config.toml"), nil
}

// Load reads the config at path, or the default location when path is
// empty. A missing file is not an error: defaults plus environment
// overrides apply. It returns the config and the resolved path.
func Load(path string) (*Config, string, error) {
	cfg := Default()

	resolvedPath := path
	if resolvedPath == "" {
		var err error
		resolvedPath, err = DefaultConfigPath()
		if err != nil {
			return nil, "", err
		}
	}

	data, err := os.ReadFile(resolvedPath)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, "", fmt.Errorf("parse config: %w", err)
		}
	case os.IsNotExist(err):
		// fall through to defaults
	default:
		return nil, "", fmt.Errorf("open config: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.normalize(); err != nil {
		return nil, "", err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}

	return &cfg, resolvedPath, nil
}

// applyEnv overlays the environment variables that may override the file.
func (c *Config) applyEnv() {
	if v := os.Getenv("WRITERSROOM_SERVER_URL"); v != "" {
		c.Server.URL = v
	}
	if v := os.Getenv("WRITERSROOM_DB_PATH"); v != "" {
		c.Storage.DBPath = v
	}
	if v := os.Getenv("WRITERSROOM_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Init writes the commented sample config to path, failing if a file is
// already there.
func Init(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists at %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o600); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Debounce returns the debounce window as a duration.
func (s Sync) Debounce() time.Duration { return time.Duration(s.DebounceMs) * time.Millisecond }

// MaxWait returns the max-wait ceiling as a duration.
func (s Sync) MaxWait() time.Duration { return time.Duration(s.MaxWaitMs) * time.Millisecond }

// ProbeInterval returns the connectivity probe interval as a duration.
func (s Sync) ProbeInterval() time.Duration {
	return time.Duration(s.ProbeIntervalSeconds) * time.Second
}

// Timeout returns the HTTP request timeout as a duration.
func (s Server) Timeout() time.Duration { return time.Duration(s.TimeoutSeconds) * time.Second }
