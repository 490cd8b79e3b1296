package watchlist

import (
	"time"

	"github.com/nyanbar/nyanbar/internal/metadata/anilist"
)

// Entry is one anime on the watch list.
type Entry struct {
	AnimeID    int                `json:"animeId"`
	Title      anilist.Title      `json:"title"`
	CoverImage anilist.CoverImage `json:"coverImage"`
	Episodes   int                `json:"episodes"`
	Status     string             `json:"status"`
	Season     string             `json:"season"`
	SeasonYear int                `json:"seasonYear"`
	AddedAt    time.Time          `json:"addedAt"`
}

// Progress tracks the last episode seen for one anime, either because the
// user marked it watched or because the checker noticed a newer release.
type Progress struct {
	AnimeID            int       `json:"animeId"`
	LastCheckedEpisode int       `json:"lastCheckedEpisode"`
	LastCheckedAt      time.Time `json:"lastCheckedAt"`
}
