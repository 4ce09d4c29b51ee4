package backend

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/pedagogy-studio/internal/pedagogy"
)

// CatalogSource fetches the live catalog.
type CatalogSource interface {
	ListPedagogies(ctx context.Context) (pedagogy.Catalog, error)
}

// CatalogService serves the pedagogy catalog from cache, then the backend,
// then the built-in catalog. It never fails.
type CatalogService struct {
	source   CatalogSource
	cache    CatalogCache
	cacheKey string
	logger   *logrus.Logger
}

// NewCatalogService creates a service. cache may be nil to disable caching;
// cacheKey separates catalogs of different backends sharing one cache.
func NewCatalogService(source CatalogSource, cache CatalogCache, cacheKey string, logger *logrus.Logger) *CatalogService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &CatalogService{source: source, cache: cache, cacheKey: cacheKey, logger: logger}
}

// Catalog returns the current catalog.
func (s *CatalogService) Catalog(ctx context.Context) (pedagogy.Catalog, error) {
	if s.cache != nil {
		catalog, ok, err := s.cache.Get(ctx, s.cacheKey)
		switch {
		case err != nil:
			s.logger.WithError(err).Warn("Catalog cache read failed")
		case ok:
			return catalog, nil
		}
	}

	catalog, err := s.source.ListPedagogies(ctx)
	if err != nil || len(catalog) == 0 {
		s.logger.WithError(err).Warn("Backend catalog unavailable, serving built-in catalog")
		return pedagogy.BuiltinCatalog(), nil
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, s.cacheKey, catalog); err != nil {
			s.logger.WithError(err).Warn("Catalog cache write failed")
		}
	}
	return catalog, nil
}
