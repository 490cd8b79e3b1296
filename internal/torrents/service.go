package torrents

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// Scan depths per fetched page. These bound how far down a listing
	// page each variant is inspected, not how many results are returned.
	specificModeScanDepth = 7
	allModeScanDepth      = 30

	// maxResults caps the final ranked result set.
	maxResults = 40

	// Upstream enforces aggressive rate limits; the variant loop is
	// strictly sequential with fixed pauses between requests.
	specificModePause  = 500 * time.Millisecond
	allModePause       = time.Second
	rateLimitedBackoff = 5 * time.Second
)

// Source fetches and parses one page of the upstream torrent index.
// Implementations return ErrRateLimited (possibly wrapped) on HTTP 429.
type Source interface {
	FetchListing(ctx context.Context, query string) (string, error)
	ParseListing(html string, maxRows int) []CandidateListing
}

// Service runs torrent searches against a Source.
type Service struct {
	source Source
	logger zerolog.Logger
	sleep  func(time.Duration)
}

// NewService creates a new torrent search service.
func NewService(source Source, logger zerolog.Logger) *Service {
	return &Service{
		source: source,
		logger: logger.With().Str("component", "torrents").Logger(),
		sleep:  time.Sleep,
	}
}

// Search scrapes the upstream index for listings matching the given title
// and episode selector, returning a deduplicated, ranked, capped result
// set. Per-variant failures are absorbed; the result is simply smaller.
// An empty title yields an empty result set.
func (s *Service) Search(ctx context.Context, rawTitle string, ep EpisodeSelector, opt SortOption) []CandidateListing {
	results := make([]CandidateListing, 0)

	if strings.TrimSpace(rawTitle) == "" {
		return results
	}

	title := NormalizeTitle(rawTitle)
	variants := BuildVariants(title, ep)

	s.logger.Debug().
		Str("title", title).
		Bool("allEpisodes", ep.All).
		Int("episode", ep.Number).
		Int("variants", len(variants)).
		Msg("Starting torrent search")

	if ep.All {
		results = s.searchAllEpisodes(ctx, variants, ep)
	} else {
		results = s.searchSpecificEpisode(ctx, title, variants, ep)
	}

	SortListings(results, opt)
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	s.logger.Info().
		Str("title", title).
		Int("results", len(results)).
		Msg("Torrent search complete")

	return results
}

// searchSpecificEpisode tries every variant, pausing between requests.
// A rate-limit response triggers a longer pause but the remaining
// variants are still attempted.
func (s *Service) searchSpecificEpisode(ctx context.Context, title string, variants []string, ep EpisodeSelector) []CandidateListing {
	pool := make([]CandidateListing, 0)
	seen := make(map[string]struct{})

	for _, variant := range variants {
		html, err := s.source.FetchListing(ctx, variant)
		if err != nil {
			if errors.Is(err, ErrRateLimited) {
				s.logger.Warn().Str("variant", variant).Msg("Rate limited, backing off")
				s.sleep(rateLimitedBackoff)
			} else {
				s.logger.Debug().Err(err).Str("variant", variant).Msg("Variant fetch failed")
				s.sleep(specificModePause)
			}
			continue
		}

		for _, listing := range s.source.ParseListing(html, specificModeScanDepth) {
			if !IsRelevant(listing.Title, title, ep) {
				continue
			}
			if _, dup := seen[listing.Title]; dup {
				continue
			}
			seen[listing.Title] = struct{}{}
			pool = append(pool, listing)
		}

		s.sleep(specificModePause)
	}

	return pool
}

// searchAllEpisodes stops at the first variant that yields results, and
// abandons the remaining variants entirely when rate limited.
func (s *Service) searchAllEpisodes(ctx context.Context, variants []string, ep EpisodeSelector) []CandidateListing {
	pool := make([]CandidateListing, 0)
	seen := make(map[string]struct{})

	for _, variant := range variants {
		if len(pool) > 0 {
			break
		}

		html, err := s.source.FetchListing(ctx, variant)
		if err != nil {
			if errors.Is(err, ErrRateLimited) {
				s.logger.Warn().Str("variant", variant).Msg("Rate limited, abandoning remaining variants")
				break
			}
			s.logger.Debug().Err(err).Str("variant", variant).Msg("Variant fetch failed")
			continue
		}

		// Relevance is checked against the variant that produced the
		// page; variants only differ from the title in whitespace here.
		for _, listing := range s.source.ParseListing(html, allModeScanDepth) {
			if !IsRelevant(listing.Title, variant, ep) {
				continue
			}
			if _, dup := seen[listing.Title]; dup {
				continue
			}
			seen[listing.Title] = struct{}{}
			pool = append(pool, listing)
		}

		if len(variants) > 1 {
			s.sleep(allModePause)
		}
	}

	return pool
}
