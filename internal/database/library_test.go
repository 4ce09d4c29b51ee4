package database

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedagogy-studio/internal/domain"
	"github.com/pedagogy-studio/internal/library"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestOpenLibrary_None(t *testing.T) {
	store, release, err := OpenLibrary(context.Background(), domain.LibraryConfig{Driver: "none"}, quietLogger())
	require.NoError(t, err)
	assert.Nil(t, store)
	release()
}

func TestOpenLibrary_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lessons.db")
	store, release, err := OpenLibrary(context.Background(), domain.LibraryConfig{Driver: "sqlite", SQLitePath: path}, quietLogger())
	require.NoError(t, err)
	defer release()

	require.IsType(t, &library.SQLiteStore{}, store)
	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOpenLibrary_UnknownDriver(t *testing.T) {
	_, _, err := OpenLibrary(context.Background(), domain.LibraryConfig{Driver: "mongo"}, quietLogger())
	assert.ErrorContains(t, err, "unknown library driver")
}
