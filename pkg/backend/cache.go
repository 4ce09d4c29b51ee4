package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"

	"github.com/pedagogy-studio/internal/domain"
	"github.com/pedagogy-studio/internal/pedagogy"
)

const catalogKeyPrefix = "pedagogy-studio:catalog:"

// CatalogCache stores fetched catalogs keyed by backend URL.
type CatalogCache interface {
	Get(ctx context.Context, key string) (pedagogy.Catalog, bool, error)
	Set(ctx context.Context, key string, catalog pedagogy.Catalog) error
	Close() error
}

// NewCatalogCache builds the cache selected by cfg.Driver. The "none" driver
// returns a nil cache.
func NewCatalogCache(cfg domain.CacheConfig) (CatalogCache, error) {
	switch cfg.Driver {
	case "", "memory":
		return NewMemoryCatalogCache(cfg.MaxItems, cfg.TTL), nil
	case "redis":
		return NewRedisCatalogCache(cfg)
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown cache driver: %s", cfg.Driver)
	}
}

// MemoryCatalogCache is an in-process LRU whose entries expire after a TTL.
type MemoryCatalogCache struct {
	lru *expirable.LRU[string, pedagogy.Catalog]
}

// NewMemoryCatalogCache creates a cache holding at most size catalogs.
func NewMemoryCatalogCache(size int, ttl time.Duration) *MemoryCatalogCache {
	if size <= 0 {
		size = 64
	}
	return &MemoryCatalogCache{lru: expirable.NewLRU[string, pedagogy.Catalog](size, nil, ttl)}
}

// Get returns a copy of the cached catalog.
func (m *MemoryCatalogCache) Get(_ context.Context, key string) (pedagogy.Catalog, bool, error) {
	c, ok := m.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	return cloneCatalog(c), true, nil
}

// Set stores a copy of catalog.
func (m *MemoryCatalogCache) Set(_ context.Context, key string, catalog pedagogy.Catalog) error {
	m.lru.Add(key, cloneCatalog(catalog))
	return nil
}

// Len reports the number of live entries.
func (m *MemoryCatalogCache) Len() int { return m.lru.Len() }

func (m *MemoryCatalogCache) Close() error {
	m.lru.Purge()
	return nil
}

func cloneCatalog(c pedagogy.Catalog) pedagogy.Catalog {
	out := make(pedagogy.Catalog, len(c))
	for i, info := range c {
		out[i] = info
		out[i].Parameters = append([]pedagogy.Parameter(nil), info.Parameters...)
	}
	return out
}

// RedisCatalogCache shares catalogs between server replicas.
type RedisCatalogCache struct {
	redis *redis.Client
	ttl   time.Duration
}

type cachedCatalog struct {
	Catalog  pedagogy.Catalog `json:"catalog"`
	CachedAt time.Time        `json:"cached_at"`
}

// NewRedisCatalogCache connects to cfg.RedisURL and verifies the connection.
func NewRedisCatalogCache(cfg domain.CacheConfig) (*RedisCatalogCache, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.PoolTimeout > 0 {
		opts.PoolTimeout = cfg.PoolTimeout
	}
	if cfg.MaxRetries != 0 {
		opts.MaxRetries = cfg.MaxRetries
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCatalogCache{redis: client, ttl: cfg.TTL}, nil
}

// Get reads a catalog. A missing key is a miss, not an error.
func (r *RedisCatalogCache) Get(ctx context.Context, key string) (pedagogy.Catalog, bool, error) {
	data, err := r.redis.Get(ctx, catalogKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached catalog: %w", err)
	}

	var cached cachedCatalog
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached catalog: %w", err)
	}
	return cached.Catalog, true, nil
}

// Set writes catalog with the configured TTL.
func (r *RedisCatalogCache) Set(ctx context.Context, key string, catalog pedagogy.Catalog) error {
	data, err := json.Marshal(cachedCatalog{Catalog: catalog, CachedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := r.redis.Set(ctx, catalogKeyPrefix+key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache catalog: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func (r *RedisCatalogCache) Ping(ctx context.Context) error {
	return r.redis.Ping(ctx).Err()
}

func (r *RedisCatalogCache) Close() error {
	return r.redis.Close()
}
