package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DataDir returns the base data directory for gzjson.
// It follows the XDG Base Directory Specification:
// - $GZJSON_DATA_DIR (full override)
// - $XDG_CONFIG_HOME/gzjson
// - ~/.config/gzjson (fallback)
func DataDir() (string, error) {
	// Check for full override
	if dir := os.Getenv("GZJSON_DATA_DIR"); dir != "" {
		return dir, nil
	}

	// Check XDG_CONFIG_HOME
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, "gzjson"), nil
	}

	// Fallback to ~/.config/gzjson
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".config", "gzjson"), nil
}

// ConfigPath returns the path to the config.json file.
func ConfigPath() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", fmt.Errorf("failed to get data directory: %w", err)
	}
	return filepath.Join(dataDir, "config.json"), nil
}
