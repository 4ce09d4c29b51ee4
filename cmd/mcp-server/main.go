package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pedagogy-studio/internal/config"
	"github.com/pedagogy-studio/internal/database"
	"github.com/pedagogy-studio/internal/logging"
	"github.com/pedagogy-studio/internal/mcp"
	"github.com/pedagogy-studio/internal/metrics"
	"github.com/pedagogy-studio/pkg/backend"
)

func main() {
	// Load configuration
	configManager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := configManager.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	cfg := configManager.GetConfig()

	// stdout carries the protocol
	logCfg := cfg.Logging
	if logCfg.Output == "" || strings.EqualFold(logCfg.Output, "stdout") {
		logCfg.Output = "stderr"
	}
	logger, logCloser, err := logging.New(logCfg)
	if err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}
	defer logCloser.Close()

	// Setup graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client := backend.NewClient(cfg.Backend, logger)
	cache, err := backend.NewCatalogCache(cfg.Cache)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create catalog cache")
	}
	if cache != nil {
		defer cache.Close()
	}
	catalog := backend.NewCatalogService(client, cache, cfg.Backend.BaseURL, logger)

	store, closeStore, err := database.OpenLibrary(ctx, cfg.Library, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open lesson library")
	}
	defer closeStore()

	server, err := mcp.NewServer(cfg.MCP, catalog, client,
		mcp.WithLibrary(store),
		mcp.WithLogger(logger),
		mcp.WithMetrics(metrics.New()),
	)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create MCP server")
	}

	if err := server.RunStdio(ctx); err != nil {
		logger.WithError(err).Error("MCP server failed")
		return
	}
	logger.Info("Pedagogy Studio MCP server stopped")
}
