// Package watchlist manages the persisted list of followed anime and the
// per-anime episode progress markers consumed by the episode checker.
package watchlist

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/nyanbar/nyanbar/internal/kvstore"
)

// Service provides watch-list management.
// A single mutex serializes read-modify-write cycles on the stored list;
// individual writes are last-write-wins snapshots.
type Service struct {
	store  *kvstore.Store
	logger zerolog.Logger
	mu     sync.Mutex
}

// NewService creates a new watch-list service.
func NewService(store *kvstore.Store, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.With().Str("component", "watchlist").Logger(),
	}
}

// List returns all watch-list entries.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	entries := make([]Entry, 0)
	if _, err := s.store.GetJSON(ctx, kvstore.KeyWatchlist, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Add appends an entry to the watch list. Adding an anime that is already
// listed is a no-op; the existing entry is kept.
func (s *Service) Add(ctx context.Context, entry Entry) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, existing := range entries {
		if existing.AnimeID == entry.AnimeID {
			return entries, nil
		}
	}

	if entry.AddedAt.IsZero() {
		entry.AddedAt = time.Now()
	}
	entries = append(entries, entry)

	if err := s.store.SetJSON(ctx, kvstore.KeyWatchlist, entries); err != nil {
		return nil, err
	}

	s.logger.Info().Int("animeId", entry.AnimeID).Str("title", entry.Title.Preferred()).Msg("Added to watch list")
	return entries, nil
}

// Remove deletes the entry for the given anime ID, if present.
func (s *Service) Remove(ctx context.Context, animeID int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if entry.AnimeID != animeID {
			filtered = append(filtered, entry)
		}
	}

	if len(filtered) == len(entries) {
		return entries, nil
	}

	if err := s.store.SetJSON(ctx, kvstore.KeyWatchlist, filtered); err != nil {
		return nil, err
	}

	s.logger.Info().Int("animeId", animeID).Msg("Removed from watch list")
	return filtered, nil
}

// GetProgress returns the last recorded episode for an anime, or 0 when
// nothing has been recorded yet.
func (s *Service) GetProgress(ctx context.Context, animeID int) (int, error) {
	var progress Progress
	found, err := s.store.GetJSON(ctx, kvstore.ProgressKey(animeID), &progress)
	if err != nil || !found {
		return 0, err
	}
	return progress.LastCheckedEpisode, nil
}

// SetProgress records the last seen episode for an anime.
func (s *Service) SetProgress(ctx context.Context, animeID, episode int) error {
	return s.store.SetJSON(ctx, kvstore.ProgressKey(animeID), Progress{
		AnimeID:            animeID,
		LastCheckedEpisode: episode,
		LastCheckedAt:      time.Now(),
	})
}
