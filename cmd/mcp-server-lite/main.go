// Package main provides the lightweight entry point for the Pedagogy Studio
// MCP server. It needs no database or Redis: catalogs are cached in memory
// and saved lessons go to SQLite under the data directory.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pedagogy-studio/internal/config"
	"github.com/pedagogy-studio/internal/domain"
	"github.com/pedagogy-studio/internal/library"
	"github.com/pedagogy-studio/internal/logging"
	"github.com/pedagogy-studio/internal/mcp"
	"github.com/pedagogy-studio/pkg/backend"
)

func main() {
	// Load lightweight configuration
	cfg := config.LoadLiteConfig()
	if err := cfg.EnsureDataDir(); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	logger := logging.NewWriter(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	logger.WithField("data_dir", cfg.DataDir).Info("Starting Pedagogy Studio MCP server (lite)")

	client := backend.NewClient(domain.BackendConfig{
		BaseURL: cfg.BackendURL,
		Timeout: cfg.BackendTimeout,
	}, logger)
	cache := backend.NewMemoryCatalogCache(cfg.CacheMaxItems, cfg.CacheTTL)
	catalog := backend.NewCatalogService(client, cache, cfg.BackendURL, logger)

	store, err := library.NewSQLiteStore(cfg.LibraryDBPath())
	if err != nil {
		logger.WithError(err).Fatal("Failed to open lesson library")
	}
	defer store.Close()

	server, err := mcp.NewServer(domain.MCPConfig{}, catalog, client,
		mcp.WithLibrary(store),
		mcp.WithLogger(logger),
	)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create MCP server")
	}

	// Setup graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := server.RunStdio(ctx); err != nil {
		logger.WithError(err).Error("MCP server failed")
		return
	}
	logger.Info("Pedagogy Studio MCP server (lite) stopped")
}
