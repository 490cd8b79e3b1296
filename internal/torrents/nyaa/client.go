// Package nyaa implements the upstream torrent index source: one HTTP GET
// per search query plus an HTML table parser for the returned listing.
package nyaa

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/nyanbar/nyanbar/internal/config"
	"github.com/nyanbar/nyanbar/internal/torrents"
)

// Client fetches listing pages from the torrent index.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     zerolog.Logger
}

// NewClient creates a new index client.
func NewClient(cfg config.NyaaConfig, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		logger:    logger.With().Str("component", "nyaa").Logger(),
	}
}

// FetchListing issues a single GET for the anime category filtered by the
// given query and returns the raw HTML body. Returns
// torrents.ErrRateLimited (wrapped) when the index responds with 429.
func (c *Client) FetchListing(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("f", "0")
	params.Set("c", "1_0")
	params.Set("q", query)

	searchURL := fmt.Sprintf("%s/?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", fmt.Errorf("query %q: %w", query, torrents.ErrRateLimited)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d for query %q", resp.StatusCode, query)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	return string(body), nil
}
