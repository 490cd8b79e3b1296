package torrents

import (
	"fmt"
	"strings"
)

// BuildVariants produces the ordered list of search strings tried against
// the upstream index for a normalized title.
//
// For a specific episode, release-group-tagged variants come first: they
// are the most likely to produce a result that survives the relevance
// filter. Group-agnostic notations follow. For all-episodes searches only
// the title itself is used, plus a whitespace-renormalized safety copy.
func BuildVariants(title string, ep EpisodeSelector) []string {
	if ep.All {
		return []string{
			title,
			strings.Join(strings.Fields(title), " "),
		}
	}

	padded := fmt.Sprintf("%02d", ep.Number)

	return []string{
		fmt.Sprintf("[ASW] %s - %d", title, ep.Number),
		fmt.Sprintf("[ASW] %s %d", title, ep.Number),
		fmt.Sprintf("[EMBER] %s S01E%s", title, padded),
		fmt.Sprintf("[EMBER] %s %d", title, ep.Number),
		fmt.Sprintf("[Anime Time] %s S01E%s", title, padded),
		fmt.Sprintf("[Anime Time] %s %d", title, ep.Number),
		fmt.Sprintf("[Erai-raws] %s - %d", title, ep.Number),
		fmt.Sprintf("[Erai-raws] %s %d", title, ep.Number),
		fmt.Sprintf("%s - %d", title, ep.Number),
		fmt.Sprintf("%s %d", title, ep.Number),
		fmt.Sprintf("%s EP%s", title, padded),
		fmt.Sprintf("%s E%s", title, padded),
		fmt.Sprintf("%s [%s]", title, padded),
		fmt.Sprintf("%s (%s)", title, padded),
	}
}
