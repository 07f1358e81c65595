// Package rawg is a rate-limited client for the RAWG video game database API.
// Lookups are by game name: the client searches first, then fetches the
// requested resource for the best match.
package rawg

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gamedex/gamedex-server/internal/logger"
	"github.com/gamedex/gamedex-server/internal/ratelimit"
)

const (
	defaultBaseURL = "https://api.rawg.io/api"

	// Rate limit: 5 requests per second, burst of 5. The free RAWG tier
	// allows 20k requests per month; the limiter just keeps bursts polite.
	defaultRPS   = 5.0
	defaultBurst = 5

	defaultTimeout = 30 * time.Second
)

// Client is a rate-limited RAWG API client.
type Client struct {
	http    *http.Client
	limiter *ratelimit.KeyedRateLimiter
	logger  *logger.Logger
	apiKey  string
	baseURL string
}

// New creates a new RAWG client. The client is created even when apiKey is
// empty; every lookup then fails with ErrNotConfigured so callers can
// degrade gracefully.
func New(apiKey string, log *logger.Logger) *Client {
	return &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: ratelimit.New(defaultRPS, defaultBurst),
		logger:  log,
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
	}
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Close releases resources held by the client.
func (c *Client) Close() {
	c.limiter.Stop()
}

// Details looks up a game by name and returns its full detail record.
// DescriptionRaw is normalized: when RAWG returns only HTML, it is converted
// to markdown-ish plain text.
func (c *Client) Details(ctx context.Context, gameName string) (*GameDetails, error) {
	gameID, err := c.resolveGameID(ctx, gameName)
	if err != nil {
		return nil, wrapError("details", gameName, err)
	}

	body, err := c.doRequest(ctx, fmt.Sprintf("/games/%d", gameID), nil)
	if err != nil {
		return nil, wrapError("details", gameName, err)
	}

	var details GameDetails
	if err := json.Unmarshal(body, &details); err != nil {
		return nil, wrapError("details", gameName, fmt.Errorf("parse response: %w", err))
	}

	if details.DescriptionRaw == "" && details.Description != "" {
		details.DescriptionRaw = htmlToText(details.Description)
	}

	return &details, nil
}

// Screenshots looks up a game by name and returns its screenshots.
func (c *Client) Screenshots(ctx context.Context, gameName string) ([]Screenshot, error) {
	gameID, err := c.resolveGameID(ctx, gameName)
	if err != nil {
		return nil, wrapError("screenshots", gameName, err)
	}

	body, err := c.doRequest(ctx, fmt.Sprintf("/games/%d/screenshots", gameID), nil)
	if err != nil {
		return nil, wrapError("screenshots", gameName, err)
	}

	var resp listResponse[Screenshot]
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("screenshots", gameName, fmt.Errorf("parse response: %w", err))
	}

	return resp.Results, nil
}

// Movies looks up a game by name and returns its trailers.
func (c *Client) Movies(ctx context.Context, gameName string) ([]Movie, error) {
	gameID, err := c.resolveGameID(ctx, gameName)
	if err != nil {
		return nil, wrapError("movies", gameName, err)
	}

	body, err := c.doRequest(ctx, fmt.Sprintf("/games/%d/movies", gameID), nil)
	if err != nil {
		return nil, wrapError("movies", gameName, err)
	}

	var resp listResponse[Movie]
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("movies", gameName, fmt.Errorf("parse response: %w", err))
	}

	return resp.Results, nil
}

// resolveGameID searches RAWG for a name and returns the top match's ID.
func (c *Client) resolveGameID(ctx context.Context, gameName string) (int, error) {
	if gameName == "" {
		return 0, ErrBadRequest
	}

	query := url.Values{}
	query.Set("search", gameName)
	query.Set("page_size", "1")

	body, err := c.doRequest(ctx, "/games", query)
	if err != nil {
		return 0, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("parse search response: %w", err)
	}

	if len(resp.Results) == 0 {
		return 0, ErrNotFound
	}

	return resp.Results[0].ID, nil
}

// doRequest executes an HTTP request with rate limiting.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	// Wait for rate limit
	if err := c.limiter.Wait(ctx, "rawg"); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Gamedex/1.0")

	c.logger.Debug("rawg request", "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case http.StatusBadRequest, http.StatusUnauthorized:
		return nil, ErrBadRequest
	default:
		if resp.StatusCode >= 500 {
			return nil, ErrServer
		}
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
}
