package nyaa

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/nyanbar/nyanbar/internal/torrents"
)

// ParseListing extracts candidate listings from a search results page.
// At most maxRows table rows are inspected. Rows missing a title or a
// download link are skipped; unparseable seed/leech counts default to 0.
// A malformed document yields an empty list, never an error.
func (c *Client) ParseListing(html string, maxRows int) []torrents.CandidateListing {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		c.logger.Debug().Err(err).Msg("Failed to parse listing document")
		return nil
	}

	var listings []torrents.CandidateListing

	doc.Find("tbody tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		if i >= maxRows {
			return false
		}

		// The title cell may also hold a comment-count anchor; the
		// detail-page link is the last one.
		title := strings.TrimSpace(row.Find("td:nth-child(2) a").Last().Text())
		downloadURL, _ := row.Find("td:nth-child(3) a").First().Attr("href")
		magnetURL, hasMagnet := row.Find("td:nth-child(3) a:nth-child(2)").Attr("href")

		if title == "" || downloadURL == "" {
			return true
		}

		listing := torrents.CandidateListing{
			Title:       title,
			Size:        strings.TrimSpace(row.Find("td:nth-child(4)").Text()),
			Date:        strings.TrimSpace(row.Find("td:nth-child(6)").Text()),
			Seeders:     parseCount(row.Find("td:nth-child(7)").Text()),
			Leechers:    parseCount(row.Find("td:nth-child(8)").Text()),
			DownloadURL: c.absoluteURL(downloadURL),
		}
		if hasMagnet && magnetURL != "" {
			magnet := c.absoluteURL(magnetURL)
			listing.MagnetURL = &magnet
		}

		listings = append(listings, listing)
		return true
	})

	return listings
}

// absoluteURL resolves index-relative links; magnet and already-absolute
// links pass through unchanged.
func (c *Client) absoluteURL(href string) string {
	if strings.HasPrefix(href, "/") {
		return c.baseURL + href
	}
	return href
}

func parseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
