package domain

import (
	"context"

	"github.com/pedagogy-studio/internal/pedagogy"
)

// ContentGenerator submits a topic, pedagogy and parameter mapping to the
// generation backend and returns the generated payload.
type ContentGenerator interface {
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
}

// CatalogProvider lists the pedagogies on offer with their parameter schemas.
type CatalogProvider interface {
	Catalog(ctx context.Context) (pedagogy.Catalog, error)
}

// ConfigManager defines the interface for configuration management
type ConfigManager interface {
	GetConfig() *Config
	GetServerConfig() *ServerConfig
	GetBackendConfig() *BackendConfig
	GetCacheConfig() *CacheConfig
	GetLibraryConfig() *LibraryConfig
	GetLoggingConfig() *LoggingConfig
	Reload() error
	Validate() error
	GetDatabaseConnectionString() string
	GetRedisConnectionString() string
	IsProduction() bool
	IsDevelopment() bool
}
