package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedagogy-studio/internal/domain"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestManager_Defaults(t *testing.T) {
	m, err := NewManagerFromFile(writeConfig(t, "environment: development\n"))
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	cfg := m.GetConfig()
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "http://localhost:8000", m.GetBackendConfig().BaseURL)
	assert.Equal(t, uint32(5), cfg.Backend.CircuitBreaker.FailureThreshold)
	assert.Equal(t, "memory", m.GetCacheConfig().Driver)
	assert.Equal(t, "sqlite", m.GetLibraryConfig().Driver)
	assert.Equal(t, "info", m.GetLoggingConfig().Level)
	assert.True(t, m.IsDevelopment())
	assert.False(t, m.IsProduction())
}

func TestManager_FileValues(t *testing.T) {
	m, err := NewManagerFromFile(writeConfig(t, `
environment: production
server:
  port: 9090
  cors_origins: ["https://studio.example.org"]
backend:
  base_url: https://gen.example.org
  timeout: 2m
cache:
  driver: redis
  redis_url: redis://cache:6379/1
library:
  driver: postgres
  postgres:
    host: db
    database: lessons
    username: studio
    password: s3cret
`))
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	assert.Equal(t, 9090, m.GetServerConfig().Port)
	assert.Equal(t, []string{"https://studio.example.org"}, m.GetServerConfig().CORSOrigins)
	assert.Equal(t, 2*time.Minute, m.GetBackendConfig().Timeout)
	assert.Equal(t, "redis://cache:6379/1", m.GetRedisConnectionString())
	assert.Equal(t, "postgres://studio:s3cret@db:5432/lessons?sslmode=disable", m.GetDatabaseConnectionString())
	assert.True(t, m.IsProduction())
}

func TestManager_EnvOverride(t *testing.T) {
	t.Setenv("PEDAGOGY_BACKEND_BASE_URL", "http://from-env:8000")

	m, err := NewManagerFromFile(writeConfig(t, "backend:\n  base_url: http://from-file:8000\n"))
	require.NoError(t, err)

	assert.Equal(t, "http://from-env:8000", m.GetBackendConfig().BaseURL)
}

func TestManager_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *domain.Config)
		wantErr string
	}{
		{"bad port", func(c *domain.Config) { c.Server.Port = 0 }, "invalid server port"},
		{"missing backend", func(c *domain.Config) { c.Backend.BaseURL = "" }, "backend base URL is required"},
		{"relative backend", func(c *domain.Config) { c.Backend.BaseURL = "localhost" }, "invalid backend base URL"},
		{"bad cache driver", func(c *domain.Config) { c.Cache.Driver = "memcached" }, "invalid cache driver"},
		{"redis without url", func(c *domain.Config) { c.Cache.Driver = "redis"; c.Cache.RedisURL = "" }, "Redis URL is required"},
		{"bad library driver", func(c *domain.Config) { c.Library.Driver = "mongo" }, "invalid library driver"},
		{"postgres without host", func(c *domain.Config) { c.Library.Driver = "postgres"; c.Library.Postgres.Host = "" }, "database host is required"},
		{"bad log level", func(c *domain.Config) { c.Logging.Level = "chatty" }, "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewManagerFromFile(writeConfig(t, "environment: test\n"))
			require.NoError(t, err)
			tt.mutate(m.GetConfig())

			err = m.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewManagerFromFile_Missing(t *testing.T) {
	_, err := NewManagerFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
