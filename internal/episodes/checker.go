// Package episodes implements the periodic new-episode checker for the
// watch list and the notification log it feeds.
package episodes

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"

	"github.com/nyanbar/nyanbar/internal/torrents"
	"github.com/nyanbar/nyanbar/internal/watchlist"
)

// episodeNumberRegex extracts episode numbers from release titles when
// scanning all-episode search results for the newest release.
var episodeNumberRegex = regexp.MustCompile(`(?i)(?:ep|episode|e)\s*(\d+)`)

// perAnimePause spaces out the torrent searches of consecutive watch-list
// entries to stay within upstream rate limits.
const perAnimePause = 3 * time.Second

// CheckResult describes the outcome of checking one anime.
type CheckResult struct {
	AnimeID        int    `json:"animeId"`
	AnimeTitle     string `json:"animeTitle"`
	CurrentEpisode int    `json:"currentEpisode"`
	LatestEpisode  int    `json:"latestEpisode"`
	HasNewEpisode  bool   `json:"hasNewEpisode"`
}

// TorrentSearcher is the torrent search dependency.
type TorrentSearcher interface {
	Search(ctx context.Context, rawTitle string, ep torrents.EpisodeSelector, opt torrents.SortOption) []torrents.CandidateListing
}

// WatchlistProvider supplies the followed anime and their progress markers.
type WatchlistProvider interface {
	List(ctx context.Context) ([]watchlist.Entry, error)
	GetProgress(ctx context.Context, animeID int) (int, error)
	SetProgress(ctx context.Context, animeID, episode int) error
}

// ResultHandler receives each new-episode result as a side effect.
// Composed at the call site; the checker itself only produces results.
type ResultHandler func(ctx context.Context, result CheckResult)

// Checker periodically scans the watch list for newly released episodes.
// It is an explicitly owned component with a start/stop lifecycle; a
// second Start while running is a no-op, and an in-flight guard prevents
// overlapping runs.
type Checker struct {
	torrents  TorrentSearcher
	watchlist WatchlistProvider
	onResult  ResultHandler
	logger    zerolog.Logger
	sleep     func(time.Duration)

	mu        sync.Mutex
	scheduler gocron.Scheduler
	checking  bool
}

// NewChecker creates a new episode checker. onResult may be nil.
func NewChecker(searcher TorrentSearcher, list WatchlistProvider, onResult ResultHandler, logger zerolog.Logger) *Checker {
	return &Checker{
		torrents:  searcher,
		watchlist: list,
		onResult:  onResult,
		logger:    logger.With().Str("component", "episode-checker").Logger(),
		sleep:     time.Sleep,
	}
}

// Start begins periodic checking at the given interval, running once
// immediately. Calling Start while already started is a no-op.
func (c *Checker) Start(interval time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.scheduler != nil {
		return nil
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { c.Run(context.Background()) }),
		gocron.WithName("episode-check"),
	)
	if err != nil {
		return fmt.Errorf("failed to create check job: %w", err)
	}

	scheduler.Start()
	c.scheduler = scheduler

	c.logger.Info().Dur("interval", interval).Msg("Episode checker started")

	go c.Run(context.Background())
	return nil
}

// Stop halts periodic checking. Safe to call when not started.
func (c *Checker) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.scheduler == nil {
		return nil
	}

	err := c.scheduler.Shutdown()
	c.scheduler = nil

	c.logger.Info().Msg("Episode checker stopped")
	return err
}

// Run performs one full check and routes each new-episode result through
// the configured handler. Returns the new-episode results.
func (c *Checker) Run(ctx context.Context) []CheckResult {
	results := c.CheckAll(ctx)
	if c.onResult != nil {
		for _, result := range results {
			c.onResult(ctx, result)
		}
	}
	return results
}

// CheckAll checks every watch-list entry and returns those with a newer
// episode than last recorded. Overlapping invocations return nil.
func (c *Checker) CheckAll(ctx context.Context) []CheckResult {
	c.mu.Lock()
	if c.checking {
		c.mu.Unlock()
		c.logger.Debug().Msg("Check already in progress, skipping")
		return nil
	}
	c.checking = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.checking = false
		c.mu.Unlock()
	}()

	entries, err := c.watchlist.List(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to load watch list")
		return nil
	}
	if len(entries) == 0 {
		return nil
	}

	c.logger.Info().Int("entries", len(entries)).Msg("Checking watch list for new episodes")

	var results []CheckResult
	for i, entry := range entries {
		if result := c.checkAnime(ctx, entry); result != nil && result.HasNewEpisode {
			results = append(results, *result)
			if err := c.watchlist.SetProgress(ctx, entry.AnimeID, result.LatestEpisode); err != nil {
				c.logger.Warn().Err(err).Int("animeId", entry.AnimeID).Msg("Failed to record progress")
			}
		}

		if i < len(entries)-1 {
			c.sleep(perAnimePause)
		}
	}

	c.logger.Info().Int("newEpisodes", len(results)).Msg("Watch list check complete")
	return results
}

// checkAnime looks up the newest released episode for one anime.
func (c *Checker) checkAnime(ctx context.Context, entry watchlist.Entry) *CheckResult {
	title := entry.Title.Preferred()
	if title == "" {
		return nil
	}

	// Year and season narrow the all-episode search considerably.
	searchTerm := title
	if entry.SeasonYear > 0 {
		searchTerm = fmt.Sprintf("%s %d", searchTerm, entry.SeasonYear)
	}
	if entry.Season != "" {
		searchTerm = fmt.Sprintf("%s %s", searchTerm, entry.Season)
	}

	listings := c.torrents.Search(ctx, searchTerm, torrents.EpisodeSelector{All: true}, torrents.SortDefault)
	if len(listings) == 0 {
		return nil
	}

	latest := 0
	for _, listing := range listings {
		if m := episodeNumberRegex.FindStringSubmatch(listing.Title); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > latest {
				latest = n
			}
		}
	}
	if latest == 0 {
		return nil
	}

	current, err := c.watchlist.GetProgress(ctx, entry.AnimeID)
	if err != nil {
		c.logger.Warn().Err(err).Int("animeId", entry.AnimeID).Msg("Failed to load progress")
	}

	return &CheckResult{
		AnimeID:        entry.AnimeID,
		AnimeTitle:     title,
		CurrentEpisode: current,
		LatestEpisode:  latest,
		HasNewEpisode:  latest > current,
	}
}
