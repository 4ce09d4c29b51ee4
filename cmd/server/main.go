package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/pedagogy-studio/internal/config"
	"github.com/pedagogy-studio/internal/database"
	"github.com/pedagogy-studio/internal/logging"
	"github.com/pedagogy-studio/internal/metrics"
	"github.com/pedagogy-studio/internal/web"
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

	logger, logCloser, err := logging.New(*configManager.GetLoggingConfig())
	if err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}
	defer logCloser.Close()

	// Setup graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, configManager, logger); err != nil {
		logger.WithError(err).Fatal("Server failed")
	}
	logger.Info("Server stopped")
}

func run(ctx context.Context, configManager *config.Manager, logger *logrus.Logger) error {
	cfg := configManager.GetConfig()
	logger.WithFields(logrus.Fields{
		"host":        cfg.Server.Host,
		"port":        cfg.Server.Port,
		"environment": cfg.Environment,
		"backend":     cfg.Backend.BaseURL,
	}).Info("Starting Pedagogy Studio")

	m := metrics.New()
	client := backend.NewClient(cfg.Backend, logger)

	cache, err := backend.NewCatalogCache(cfg.Cache)
	if err != nil {
		return fmt.Errorf("failed to create catalog cache: %w", err)
	}
	if cache != nil {
		defer cache.Close()
	}
	catalog := backend.NewCatalogService(client, cache, cfg.Backend.BaseURL, logger)

	store, closeStore, err := database.OpenLibrary(ctx, cfg.Library, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	server, err := web.NewServer(cfg.Server, web.Deps{
		Catalog:   catalog,
		Generator: client,
		Library:   store,
		Metrics:   m,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return server.Start(ctx)
}
