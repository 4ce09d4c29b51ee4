package backend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedagogy-studio/internal/domain"
	"github.com/pedagogy-studio/internal/pedagogy"
)

type fakeSource struct {
	catalog pedagogy.Catalog
	err     error
	calls   int
}

func (f *fakeSource) ListPedagogies(context.Context) (pedagogy.Catalog, error) {
	f.calls++
	return f.catalog, f.err
}

func TestCatalogService_CachesBackendCatalog(t *testing.T) {
	src := &fakeSource{catalog: pedagogy.Catalog{{Name: "socratic_questioning"}}}
	svc := NewCatalogService(src, NewMemoryCatalogCache(4, time.Minute), "http://backend", quietLogger())

	for i := 0; i < 3; i++ {
		got, err := svc.Catalog(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "socratic_questioning", got[0].Name)
	}
	assert.Equal(t, 1, src.calls)
}

func TestCatalogService_FallsBackToBuiltin(t *testing.T) {
	src := &fakeSource{err: errors.New("connection refused")}
	cache := NewMemoryCatalogCache(4, time.Minute)
	svc := NewCatalogService(src, cache, "k", quietLogger())

	got, err := svc.Catalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, pedagogy.BuiltinCatalog(), got)
	assert.Zero(t, cache.Len(), "fallback catalog must not be cached")
}

func TestCatalogService_EmptyBackendCatalog(t *testing.T) {
	svc := NewCatalogService(&fakeSource{catalog: pedagogy.Catalog{}}, nil, "k", quietLogger())

	got, err := svc.Catalog(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 8)
}

func TestCatalogService_NoCache(t *testing.T) {
	src := &fakeSource{catalog: pedagogy.Catalog{{Name: "gamification"}}}
	svc := NewCatalogService(src, nil, "k", quietLogger())

	_, _ = svc.Catalog(context.Background())
	_, _ = svc.Catalog(context.Background())
	assert.Equal(t, 2, src.calls)
}

func TestMemoryCatalogCache_CopiesEntries(t *testing.T) {
	cache := NewMemoryCatalogCache(2, time.Minute)
	ctx := context.Background()

	original := pedagogy.Catalog{{Name: "peer_learning", Parameters: []pedagogy.Parameter{{Name: "group_size"}}}}
	require.NoError(t, cache.Set(ctx, "k", original))
	original[0].Parameters[0].Name = "mutated"

	got, ok, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "group_size", got[0].Parameters[0].Name)
}

func TestMemoryCatalogCache_EvictsAndExpires(t *testing.T) {
	ctx := context.Background()

	small := NewMemoryCatalogCache(1, time.Minute)
	require.NoError(t, small.Set(ctx, "a", pedagogy.Catalog{{Name: "a"}}))
	require.NoError(t, small.Set(ctx, "b", pedagogy.Catalog{{Name: "b"}}))
	_, ok, _ := small.Get(ctx, "a")
	assert.False(t, ok)

	short := NewMemoryCatalogCache(4, 20*time.Millisecond)
	require.NoError(t, short.Set(ctx, "a", pedagogy.Catalog{{Name: "a"}}))
	assert.Eventually(t, func() bool {
		_, ok, _ := short.Get(ctx, "a")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestNewCatalogCache_Drivers(t *testing.T) {
	c, err := NewCatalogCache(domain.CacheConfig{Driver: "memory", MaxItems: 2, TTL: time.Minute})
	require.NoError(t, err)
	assert.IsType(t, &MemoryCatalogCache{}, c)

	c, err = NewCatalogCache(domain.CacheConfig{Driver: "none"})
	require.NoError(t, err)
	assert.Nil(t, c)

	_, err = NewCatalogCache(domain.CacheConfig{Driver: "memcached"})
	assert.Error(t, err)

	_, err = NewCatalogCache(domain.CacheConfig{Driver: "redis", RedisURL: "://bad"})
	assert.Error(t, err)
}
