package database

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/pedagogy-studio/internal/domain"
	"github.com/pedagogy-studio/internal/library"
)

// OpenLibrary opens the lesson store selected by cfg.Driver and returns a
// function that releases it. The "none" driver yields a nil store.
func OpenLibrary(ctx context.Context, cfg domain.LibraryConfig, logger *logrus.Logger) (library.Store, func(), error) {
	switch cfg.Driver {
	case "none":
		logger.Info("Lesson library disabled")
		return nil, func() {}, nil

	case "postgres":
		db, err := Open(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to lesson database: %w", err)
		}
		if cfg.Postgres.AutoMigrate {
			if err := migrateUp(ctx, db.URL(), logger); err != nil {
				db.Close()
				return nil, nil, err
			}
		}
		store, err := library.NewPostgresStore(db.SQL())
		if err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to open lesson store: %w", err)
		}
		logger.WithField("driver", "postgres").Info("Lesson library ready")
		return store, db.Close, nil

	case "sqlite", "":
		store, err := library.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open lesson store: %w", err)
		}
		logger.WithFields(logrus.Fields{"driver": "sqlite", "path": cfg.SQLitePath}).Info("Lesson library ready")
		return store, func() {
			if err := store.Close(); err != nil {
				logger.WithError(err).Warn("Failed to close lesson store")
			}
		}, nil
	}
	return nil, nil, fmt.Errorf("unknown library driver %q", cfg.Driver)
}

func migrateUp(ctx context.Context, url string, logger *logrus.Logger) error {
	runner, err := NewMigrationRunner(url, logger)
	if err != nil {
		return fmt.Errorf("failed to prepare migrations: %w", err)
	}
	defer runner.Close()
	if err := runner.Up(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
