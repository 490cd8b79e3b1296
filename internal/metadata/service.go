// Package metadata exposes the anime catalog: search, trending, popular
// and per-anime detail, passed through from AniList with a short-lived
// server-side cache on the list endpoints.
package metadata

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/nyanbar/nyanbar/internal/metadata/anilist"
)

// Cache keys for the list endpoints.
const (
	cacheKeyTrending = "trending"
	cacheKeyPopular  = "popular"
)

// CatalogClient is the interface to the upstream anime catalog.
type CatalogClient interface {
	GetAnime(ctx context.Context, id int) (*anilist.AnimeDetail, error)
	Search(ctx context.Context, search string) ([]anilist.AnimeSummary, error)
	Trending(ctx context.Context) ([]anilist.AnimeSummary, error)
	Popular(ctx context.Context) ([]anilist.AnimeSummary, error)
}

// Service orchestrates catalog lookups with caching.
type Service struct {
	client CatalogClient
	cache  *Cache
	logger zerolog.Logger
}

// NewService creates a new metadata service.
func NewService(client CatalogClient, cacheTTL time.Duration, logger zerolog.Logger) *Service {
	return &Service{
		client: client,
		cache:  NewCache(cacheTTL),
		logger: logger.With().Str("component", "metadata").Logger(),
	}
}

// GetAnime fetches the detail record for one anime. Uncached.
func (s *Service) GetAnime(ctx context.Context, id int) (*anilist.AnimeDetail, error) {
	return s.client.GetAnime(ctx, id)
}

// Search searches the catalog by title. Uncached.
func (s *Service) Search(ctx context.Context, query string) ([]anilist.AnimeSummary, error) {
	return s.client.Search(ctx, query)
}

// Trending returns trending anime, cached for the configured TTL.
func (s *Service) Trending(ctx context.Context) ([]anilist.AnimeSummary, error) {
	if cached, ok := s.cache.GetSummaries(cacheKeyTrending); ok {
		return cached, nil
	}

	results, err := s.client.Trending(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(cacheKeyTrending, results)
	return results, nil
}

// Popular returns popular releasing anime, cached for the configured TTL.
func (s *Service) Popular(ctx context.Context) ([]anilist.AnimeSummary, error) {
	if cached, ok := s.cache.GetSummaries(cacheKeyPopular); ok {
		return cached, nil
	}

	results, err := s.client.Popular(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(cacheKeyPopular, results)
	return results, nil
}

// ClearCache drops all cached list results.
func (s *Service) ClearCache() {
	s.cache.Clear()
	s.logger.Debug().Msg("Cleared metadata cache")
}
