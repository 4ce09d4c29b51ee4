package library

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pedagogy-studio/internal/database"
	"github.com/pedagogy-studio/internal/domain"
)

func TestPostgresStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping PostgreSQL integration test in short mode")
	}

	ctx := context.Background()
	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("lessons"),
		postgres.WithUsername("studio"),
		postgres.WithPassword("studio"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgContainer.Terminate(context.Background()) })

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	db, err := database.Open(ctx, domain.DatabaseConfig{
		Host: host, Port: port.Int(), Database: "lessons",
		Username: "studio", Password: "studio", SSLMode: "disable",
	}, logger)
	require.NoError(t, err)
	defer db.Close()

	runner, err := database.NewMigrationRunner(db.URL(), logger)
	require.NoError(t, err)
	require.NoError(t, runner.Up(ctx))
	require.NoError(t, runner.Close())

	store, err := NewPostgresStore(db.SQL())
	require.NoError(t, err)

	lesson := sampleLesson(t, "Photosynthesis")
	require.NoError(t, store.Save(ctx, lesson))

	got, err := store.Get(ctx, lesson.ID)
	require.NoError(t, err)
	assert.Equal(t, lesson.Content.Compact(), got.Content.Compact())
	assert.Equal(t, lesson.Params, got.Params)

	lesson.Notes = "updated"
	require.NoError(t, store.Save(ctx, lesson))
	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	var buf bytes.Buffer
	require.NoError(t, store.ExportJSON(ctx, &buf))
	_, skipped, err := store.ImportJSON(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)

	require.NoError(t, store.Delete(ctx, lesson.ID))
	_, err = store.Get(ctx, lesson.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
