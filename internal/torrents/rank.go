package torrents

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// encoderPriorityTable lists known-good release groups in priority order.
// Matching is a case-insensitive substring check against the listing
// title; index 0 is the highest priority.
var encoderPriorityTable = []string{
	"ASW",
	"EMBER",
	"Anime Time",
	"SubsPlease",
	"Erai-Raws",
}

// SortOption selects the presentation-level sort for a result set.
type SortOption string

const (
	// SortDefault orders by encoder priority, then seeders descending.
	SortDefault SortOption = ""
	// SortQuality orders by quality tier first, then as SortDefault.
	SortQuality SortOption = "quality"
	// SortSeeders orders by seeders descending only.
	SortSeeders SortOption = "seeds"
	// SortSizeDesc and SortSizeAsc order by parsed release size.
	SortSizeDesc SortOption = "size_desc"
	SortSizeAsc  SortOption = "size_asc"
)

// EncoderPriority returns the priority index of the first release-group
// fragment found in the title, or len(table) when no known group matches.
func EncoderPriority(title string) int {
	titleUpper := strings.ToUpper(title)
	for i, group := range encoderPriorityTable {
		if strings.Contains(titleUpper, strings.ToUpper(group)) {
			return i
		}
	}
	return len(encoderPriorityTable)
}

// QualityTier maps a listing title to a coarse quality rank; higher is
// better. Titles with no recognizable resolution default to the 720p tier.
func QualityTier(title string) int {
	titleUpper := strings.ToUpper(title)
	switch {
	case strings.Contains(titleUpper, "2160P") || strings.Contains(titleUpper, "4K"):
		return 3
	case strings.Contains(titleUpper, "1080P"):
		return 2
	case strings.Contains(titleUpper, "720P"):
		return 1
	case strings.Contains(titleUpper, "480P") || strings.Contains(titleUpper, "360P"):
		return 0
	default:
		return 1
	}
}

var sizeRegex = regexp.MustCompile(`(?i)([\d.]+)\s*([KMGT]i?B)`)

// ParseSizeBytes converts a human-formatted size like "1.2 GiB" to bytes.
// Returns 0 when the string cannot be parsed.
func ParseSizeBytes(size string) float64 {
	m := sizeRegex.FindStringSubmatch(size)
	if m == nil {
		return 0
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}

	switch strings.ToUpper(m[2][:1]) {
	case "K":
		return value * 1024
	case "M":
		return value * 1024 * 1024
	case "G":
		return value * 1024 * 1024 * 1024
	case "T":
		return value * 1024 * 1024 * 1024 * 1024
	}
	return value
}

// SortListings orders listings in place according to the sort option.
// When quality-priority sorting is active the quality tier is the
// outermost key, with encoder priority and seeders below it.
func SortListings(listings []CandidateListing, opt SortOption) {
	switch opt {
	case SortSeeders:
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].Seeders > listings[j].Seeders
		})
	case SortSizeDesc:
		sort.SliceStable(listings, func(i, j int) bool {
			return ParseSizeBytes(listings[i].Size) > ParseSizeBytes(listings[j].Size)
		})
	case SortSizeAsc:
		sort.SliceStable(listings, func(i, j int) bool {
			return ParseSizeBytes(listings[i].Size) < ParseSizeBytes(listings[j].Size)
		})
	case SortQuality:
		sort.SliceStable(listings, func(i, j int) bool {
			ti, tj := QualityTier(listings[i].Title), QualityTier(listings[j].Title)
			if ti != tj {
				return ti > tj
			}
			return defaultLess(listings[i], listings[j])
		})
	default:
		sort.SliceStable(listings, func(i, j int) bool {
			return defaultLess(listings[i], listings[j])
		})
	}
}

// defaultLess is the core ordering: encoder priority, then seeders
// descending within the same priority group.
func defaultLess(a, b CandidateListing) bool {
	pa, pb := EncoderPriority(a.Title), EncoderPriority(b.Title)
	if pa != pb {
		return pa < pb
	}
	return a.Seeders > b.Seeders
}
