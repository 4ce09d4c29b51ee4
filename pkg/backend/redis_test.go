package backend

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pedagogy-studio/internal/domain"
	"github.com/pedagogy-studio/internal/pedagogy"
)

func TestRedisCatalogCache_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping Redis integration test in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	cache, err := NewRedisCatalogCache(domain.CacheConfig{
		RedisURL: fmt.Sprintf("redis://%s:%s/0", host, port.Port()),
		TTL:      time.Minute,
		PoolSize: 2,
	})
	require.NoError(t, err)
	defer cache.Close()

	require.NoError(t, cache.Ping(ctx))

	_, ok, err := cache.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	catalog := pedagogy.BuiltinCatalog()
	require.NoError(t, cache.Set(ctx, "http://backend", catalog))

	got, ok, err := cache.Get(ctx, "http://backend")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, catalog, got)
}
