package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// normalize expands home-relative paths and trims stray whitespace so the
// rest of the program can use the values verbatim.
func (c *Config) normalize() error {
	c.Server.URL = strings.TrimRight(strings.TrimSpace(c.Server.URL), "/")
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))

	dbPath, err := expandPath(c.Storage.DBPath)
	if err != nil {
		return err
	}
	c.Storage.DBPath = dbPath
	return nil
}

func expandPath(pathValue string) (string, error) {
	trimmed := strings.TrimSpace(pathValue)
	if trimmed == "" {
		return "", nil
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if trimmed == "~" {
			return home, nil
		}
		return filepath.Join(home, trimmed[2:]), nil
	}
	return trimmed, nil
}
