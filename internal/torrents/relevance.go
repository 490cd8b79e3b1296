package torrents

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	batchMarkerRegex = regexp.MustCompile(`(?i)batch|complete|全集|全話|all episodes|volumes?`)
	episodeRangeRegex = regexp.MustCompile(`\b(\d{1,3})\s*[-~]\s*(\d{1,3})\b`)
	bareNumberRegex   = regexp.MustCompile(`^\d{1,3}$`)
)

// qualityMarkers are substrings that identify quality/codec tokens.
// Any token containing one of these is excluded from episode-number
// extraction so that "1080p" or "x265" never reads as an episode.
var qualityMarkers = []string{
	"10BIT", "1080P", "720P", "480P",
	"X265", "X264", "HEVC", "AAC", "DDP",
	"WEBRIP", "BLURAY", "HDRIP",
}

// IsRelevant reports whether a scraped candidate title matches the search.
//
// All-episodes mode favors recall: with a single search token the token
// must appear in the candidate; with multiple tokens one match suffices,
// since upstream renders many titles differently.
//
// Specific-episode mode favors precision: every title token must be
// present, and episode extraction must resolve to exactly the requested
// number. A candidate with several episode-like numbers is ambiguous and
// rejected even if one of them matches.
func IsRelevant(candidateTitle, searchTitle string, ep EpisodeSelector) bool {
	candidateUpper := strings.ToUpper(candidateTitle)
	searchTerms := strings.Fields(strings.ToUpper(searchTitle))

	if ep.All {
		if len(searchTerms) <= 1 {
			for _, term := range searchTerms {
				if !strings.Contains(candidateUpper, term) {
					return false
				}
			}
			return true
		}
		for _, term := range searchTerms {
			if strings.Contains(candidateUpper, term) {
				return true
			}
		}
		return false
	}

	for _, term := range searchTerms {
		if !strings.Contains(candidateUpper, term) {
			return false
		}
	}

	return matchesEpisode(candidateUpper, ep.Number)
}

// matchesEpisode applies the episode-number heuristics to an uppercased
// candidate title.
func matchesEpisode(candidateUpper string, episode int) bool {
	// A numeric range only counts when the release is marked as a batch;
	// a bare "05-06" without a batch marker is rejected outright.
	if m := episodeRangeRegex.FindStringSubmatch(candidateUpper); m != nil {
		if !batchMarkerRegex.MatchString(candidateUpper) {
			return false
		}
		start, _ := strconv.Atoi(m[1])
		end, _ := strconv.Atoi(m[2])
		return episode >= start && episode <= end
	}

	numbers := extractEpisodeNumbers(candidateUpper)
	return len(numbers) == 1 && numbers[0] == episode
}

// extractEpisodeNumbers collects standalone 1-3 digit numbers from the
// title, ignoring tokens that carry quality/codec markers.
func extractEpisodeNumbers(candidateUpper string) []int {
	var numbers []int
	for _, word := range strings.Fields(candidateUpper) {
		if containsQualityMarker(word) {
			continue
		}
		if bareNumberRegex.MatchString(word) {
			n, err := strconv.Atoi(word)
			if err != nil {
				continue
			}
			numbers = append(numbers, n)
		}
	}
	return numbers
}

func containsQualityMarker(word string) bool {
	for _, marker := range qualityMarkers {
		if strings.Contains(word, marker) {
			return true
		}
	}
	return false
}
