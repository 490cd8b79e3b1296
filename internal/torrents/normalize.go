package torrents

import (
	"regexp"
	"strings"
)

var (
	trailingYearRegex = regexp.MustCompile(`\s+\d{4}$`)
	leadingYearRegex  = regexp.MustCompile(`^\d{4}\s+`)
	parenYearRegex    = regexp.MustCompile(`\s+\(\d{4}\)`)
	bracketYearRegex  = regexp.MustCompile(`\s+\[\d{4}\]`)
	multiSpaceRegex   = regexp.MustCompile(`\s+`)
)

// NormalizeTitle strips year tokens from a free-text title so it can be
// used as a search key. Removes a 4-digit year at the start or end and
// years wrapped in parentheses or square brackets, then collapses
// whitespace. Idempotent.
func NormalizeTitle(title string) string {
	cleaned := trailingYearRegex.ReplaceAllString(title, "")
	cleaned = leadingYearRegex.ReplaceAllString(cleaned, "")
	cleaned = parenYearRegex.ReplaceAllString(cleaned, "")
	cleaned = bracketYearRegex.ReplaceAllString(cleaned, "")

	cleaned = multiSpaceRegex.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}
