// Package anilist implements the AniList GraphQL catalog client.
package anilist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/nyanbar/nyanbar/internal/config"
)

var (
	ErrNotFound    = errors.New("anime not found")
	ErrAPIError    = errors.New("AniList API error")
	ErrRateLimited = errors.New("AniList API rate limited")
)

const summaryFields = `
	id
	title {
		romaji
		english
		native
	}
	coverImage {
		extraLarge
		large
		medium
	}
	averageScore
	episodes
	status
	seasonYear
`

const animeDetailQuery = `
	query ($id: Int) {
		Media(id: $id, type: ANIME) {
			id
			idMal
			title {
				romaji
				english
				native
			}
			description
			episodes
			duration
			status
			season
			seasonYear
			genres
			averageScore
			meanScore
			popularity
			trending
			coverImage {
				extraLarge
				large
				medium
			}
			bannerImage
			format
			source
			hashtag
			countryOfOrigin
			isLicensed
			isAdult
			siteUrl
			startDate {
				year
				month
				day
			}
			endDate {
				year
				month
				day
			}
			studios {
				nodes {
					name
					siteUrl
				}
			}
			characters {
				nodes {
					name {
						full
					}
					image {
						large
					}
				}
			}
		}
	}
`

const searchQuery = `
	query ($search: String) {
		Page(page: 1, perPage: 20) {
			media(search: $search, type: ANIME, sort: POPULARITY_DESC) {` + summaryFields + `}
		}
	}
`

const trendingQuery = `
	query {
		Page(page: 1, perPage: 20) {
			media(type: ANIME, sort: TRENDING_DESC) {` + summaryFields + `}
		}
	}
`

const popularQuery = `
	query {
		Page(page: 1, perPage: 20) {
			media(type: ANIME, sort: POPULARITY_DESC, status: RELEASING) {` + summaryFields + `}
		}
	}
`

// Client is an AniList GraphQL API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     zerolog.Logger
}

// NewClient creates a new AniList client.
func NewClient(cfg config.AniListConfig, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
		baseURL: cfg.BaseURL,
		logger:  logger.With().Str("component", "anilist").Logger(),
	}
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// do executes a GraphQL query and unmarshals the data payload into out.
// GraphQL-level errors are returned wrapped in ErrAPIError.
func (c *Client) do(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	payload, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", ErrAPIError, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var envelope graphQLResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if len(envelope.Errors) > 0 {
		return fmt.Errorf("%w: %s", ErrAPIError, envelope.Errors[0].Message)
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to decode data payload: %w", err)
	}

	return nil
}

// Test verifies connectivity to the AniList API with a minimal query.
func (c *Client) Test(ctx context.Context) error {
	var result struct {
		Page struct {
			Media []AnimeSummary `json:"media"`
		} `json:"Page"`
	}
	return c.do(ctx, `query { Page(page: 1, perPage: 1) { media(type: ANIME) { id } } }`, nil, &result)
}

// GetAnime fetches the full detail record for an anime by AniList ID.
func (c *Client) GetAnime(ctx context.Context, id int) (*AnimeDetail, error) {
	var result struct {
		Media *AnimeDetail `json:"Media"`
	}

	err := c.do(ctx, animeDetailQuery, map[string]interface{}{"id": id}, &result)
	if err != nil {
		if errors.Is(err, ErrAPIError) {
			// AniList reports unknown IDs as GraphQL errors.
			return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		return nil, err
	}
	if result.Media == nil {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	return result.Media, nil
}

// Search searches anime by title, ordered by popularity.
func (c *Client) Search(ctx context.Context, search string) ([]AnimeSummary, error) {
	var result struct {
		Page struct {
			Media []AnimeSummary `json:"media"`
		} `json:"Page"`
	}

	if err := c.do(ctx, searchQuery, map[string]interface{}{"search": search}, &result); err != nil {
		return nil, err
	}
	return result.Page.Media, nil
}

// Trending returns the currently trending anime.
func (c *Client) Trending(ctx context.Context) ([]AnimeSummary, error) {
	var result struct {
		Page struct {
			Media []AnimeSummary `json:"media"`
		} `json:"Page"`
	}

	if err := c.do(ctx, trendingQuery, nil, &result); err != nil {
		return nil, err
	}
	return result.Page.Media, nil
}

// Popular returns the most popular currently releasing anime.
func (c *Client) Popular(ctx context.Context) ([]AnimeSummary, error) {
	var result struct {
		Page struct {
			Media []AnimeSummary `json:"media"`
		} `json:"Page"`
	}

	if err := c.do(ctx, popularQuery, nil, &result); err != nil {
		return nil, err
	}
	return result.Page.Media, nil
}
