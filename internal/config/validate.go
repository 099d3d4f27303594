package config

import (
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateSync(); err != nil {
		return err
	}
	return c.validateLog()
}

func (c *Config) validateServer() error {
	if c.Server.URL == "" {
		return fmt.Errorf("server.url is required")
	}
	u, err := url.Parse(c.Server.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("server.url must be an absolute http(s) URL, got %q", c.Server.URL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server.url scheme must be http or https, got %q", u.Scheme)
	}
	if c.Server.TimeoutSeconds <= 0 {
		return fmt.Errorf("server.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateStorage() error {
	if c.Storage.DBPath == "" {
		return fmt.Errorf("storage.db_path is required")
	}
	return nil
}

func (c *Config) validateSync() error {
	if c.Sync.DebounceMs <= 0 {
		return fmt.Errorf("sync.debounce_ms must be positive")
	}
	if c.Sync.MaxWaitMs < c.Sync.DebounceMs {
		return fmt.Errorf("sync.max_wait_ms must be at least sync.debounce_ms")
	}
	if c.Sync.MaxRetries <= 0 {
		return fmt.Errorf("sync.max_retries must be positive")
	}
	if c.Sync.QueueMaxRetries <= 0 {
		return fmt.Errorf("sync.queue_max_retries must be positive")
	}
	if c.Sync.ProbeIntervalSeconds <= 0 {
		return fmt.Errorf("sync.probe_interval_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLog() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", c.Log.Level)
	}
}
