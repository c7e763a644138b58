// Package config holds the configuration for the gzjson CLI and MCP
// server. The library itself takes its options explicitly; this package
// only feeds the tool surfaces.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Fuabioo/gzjson"
)

// Config holds global configuration for the gzjson tools.
type Config struct {
	Codec CodecConfig `json:"codec"`
	Cache CacheConfig `json:"cache"`
}

// CodecConfig holds codec behavior settings.
type CodecConfig struct {
	// Level is the gzip compression level used for writes.
	Level int `json:"level"`
	// MaxDocumentBytes caps the decompressed size of a single document.
	MaxDocumentBytes int64 `json:"max_document_bytes"`
}

// CacheConfig holds document cache settings for the MCP server.
type CacheConfig struct {
	// Entries is the maximum number of parsed documents kept in memory.
	Entries int `json:"entries"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Codec: CodecConfig{
			Level:            gzjson.DefaultLevel,
			MaxDocumentBytes: 1 * 1024 * 1024 * 1024, // 1GB
		},
		Cache: CacheConfig{
			Entries: 128,
		},
	}
}

// Load loads configuration from config.json in the data directory.
// Falls back to default configuration if config.json doesn't exist.
// Environment variables override both file and default values.
func Load(dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	configPath := filepath.Join(dataDir, "config.json")
	if data, err := os.ReadFile(configPath); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config.json: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config.json: %w", err)
	}
	// If file doesn't exist, we continue with defaults

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) error {
	if val, ok := os.LookupEnv("GZJSON_LEVEL"); ok {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid GZJSON_LEVEL: %w", err)
		}
		cfg.Codec.Level = parsed
	}

	if val, ok := os.LookupEnv("GZJSON_MAX_DOC_BYTES"); ok {
		parsed, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid GZJSON_MAX_DOC_BYTES: %w", err)
		}
		cfg.Codec.MaxDocumentBytes = parsed
	}

	if val, ok := os.LookupEnv("GZJSON_CACHE_ENTRIES"); ok {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid GZJSON_CACHE_ENTRIES: %w", err)
		}
		cfg.Cache.Entries = parsed
	}

	return nil
}

// NewCodec builds a codec from the configured options.
func (c *Config) NewCodec() *gzjson.Codec {
	return &gzjson.Codec{
		Level:                c.Codec.Level,
		MaxDecompressedBytes: c.Codec.MaxDocumentBytes,
	}
}
