// Package config provides configuration management for the studio binaries.
// This file contains the lightweight configuration for the CLI and MCP server.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// LiteConfig is a simplified configuration for standalone operation.
// It requires no external services besides the generation backend.
type LiteConfig struct {
	// Generation backend
	BackendURL     string        // Base URL of the generation backend
	BackendTimeout time.Duration // Zero means no client-side timeout

	// Data storage
	DataDir string // Base directory for data files

	// Cache settings
	CacheMaxItems int           // Maximum catalogs kept in memory
	CacheTTL      time.Duration // Catalog cache TTL

	// Logging
	LogLevel  string // Log level: debug, info, warn, error
	LogFormat string // Log format: json, text
}

// DefaultLiteConfig returns a configuration with sensible defaults.
func DefaultLiteConfig() *LiteConfig {
	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".pedagogy-studio")

	return &LiteConfig{
		BackendURL:    "http://localhost:8000",
		DataDir:       dataDir,
		CacheMaxItems: 64,
		CacheTTL:      10 * time.Minute,
		LogLevel:      "info",
		LogFormat:     "json",
	}
}

// LoadLiteConfig loads configuration from environment variables.
// Falls back to defaults if not set.
func LoadLiteConfig() *LiteConfig {
	cfg := DefaultLiteConfig()

	if v := os.Getenv("PEDAGOGY_BACKEND_URL"); v != "" {
		cfg.BackendURL = v
	}
	if v := os.Getenv("PEDAGOGY_BACKEND_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			cfg.BackendTimeout = d
		}
	}

	if v := os.Getenv("PEDAGOGY_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}

	if v := os.Getenv("PEDAGOGY_CACHE_MAX_ITEMS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CacheMaxItems = n
		}
	}
	if v := os.Getenv("PEDAGOGY_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.CacheTTL = d
		}
	}

	if v := os.Getenv("PEDAGOGY_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("PEDAGOGY_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}

	return cfg
}

// LibraryDBPath returns the path to the saved lesson SQLite database.
func (c *LiteConfig) LibraryDBPath() string {
	return filepath.Join(c.DataDir, "lessons.db")
}

// ExportDir returns the directory for JSON exports.
func (c *LiteConfig) ExportDir() string {
	return filepath.Join(c.DataDir, "exports")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func (c *LiteConfig) EnsureDataDir() error {
	if err := os.MkdirAll(c.DataDir, 0755); err != nil {
		return err
	}
	return os.MkdirAll(c.ExportDir(), 0755)
}
