// Package torrents implements the torrent listing search engine: query
// variant generation, relevance filtering, deduplication and ranking of
// rows scraped from the upstream index.
package torrents

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrRateLimited is returned by a Source when the upstream index responds
// with HTTP 429.
var ErrRateLimited = errors.New("upstream rate limited")

// CandidateListing is one scraped torrent-index row.
// Title is the uniqueness key within a result set.
type CandidateListing struct {
	Title       string  `json:"title"`
	Size        string  `json:"size"`
	Date        string  `json:"date"`
	Seeders     int     `json:"seeds"`
	Leechers    int     `json:"leeches"`
	DownloadURL string  `json:"downloadUrl"`
	MagnetURL   *string `json:"magnetUrl"`
}

// EpisodeSelector identifies which episode a search targets.
// The zero value selects a specific (but invalid) episode; use All for
// searches across every episode.
type EpisodeSelector struct {
	Number int
	All    bool
}

// ParseEpisodeSelector parses the episode query parameter.
// An empty value or "all" selects all episodes.
func ParseEpisodeSelector(raw string) (EpisodeSelector, error) {
	if raw == "" || strings.EqualFold(raw, "all") {
		return EpisodeSelector{All: true}, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return EpisodeSelector{}, fmt.Errorf("invalid episode selector %q", raw)
	}
	return EpisodeSelector{Number: n}, nil
}
