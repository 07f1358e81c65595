// Package igdb is a client for the IGDB game database, used to fetch box-art
// covers. IGDB sits behind Twitch's OAuth: requests carry a Client-ID header
// plus an app access token obtained via the client-credentials grant.
package igdb

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/gamedex/gamedex-server/internal/logger"
	"github.com/gamedex/gamedex-server/internal/ratelimit"
)

const (
	defaultAPIURL   = "https://api.igdb.com/v4"
	defaultImageURL = "https://images.igdb.com/igdb/image/upload"

	// IGDB allows 4 requests per second.
	defaultRPS   = 4.0
	defaultBurst = 4

	defaultTimeout = 30 * time.Second

	// Covers are small JPEGs; anything bigger than this is not a cover.
	maxCoverBytes = 10 << 20
)

// Cover identifies a game's box art on IGDB's image CDN.
type Cover struct {
	GameName string `json:"game_name"`
	ImageID  string `json:"image_id"`
	URL      string `json:"url"`
}

// Client is a rate-limited IGDB API client.
type Client struct {
	http     *http.Client
	limiter  *ratelimit.KeyedRateLimiter
	logger   *logger.Logger
	clientID string
	token    oauth2.TokenSource
	apiURL   string
	imageURL string
}

// New creates a new IGDB client. When either credential is empty the client
// is still created but every lookup fails with ErrNotConfigured.
func New(ctx context.Context, clientID, clientSecret string, log *logger.Logger) *Client {
	c := &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter:  ratelimit.New(defaultRPS, defaultBurst),
		logger:   log,
		clientID: clientID,
		apiURL:   defaultAPIURL,
		imageURL: defaultImageURL,
	}

	if clientID != "" && clientSecret != "" {
		c.token = newTokenSource(ctx, clientID, clientSecret, "")
	}

	return c
}

// Configured reports whether Twitch credentials are set.
func (c *Client) Configured() bool {
	return c.token != nil
}

// Close releases resources held by the client.
func (c *Client) Close() {
	c.limiter.Stop()
}

// CoverInfo searches IGDB for a game by name and returns its cover image
// reference. Returns ErrNotFound when the top match has no cover.
func (c *Client) CoverInfo(ctx context.Context, gameName string) (*Cover, error) {
	if c.token == nil {
		return nil, wrapError("search", gameName, ErrNotConfigured)
	}

	// APIcalypse query: top match by name, cover fields only.
	query := fmt.Sprintf("search %q; fields name, cover.url, cover.image_id; limit 1;", gameName)

	body, err := c.doRequest(ctx, "/games", query)
	if err != nil {
		return nil, wrapError("search", gameName, err)
	}

	var games []struct {
		ID    int    `json:"id"`
		Name  string `json:"name"`
		Cover *struct {
			URL     string `json:"url"`
			ImageID string `json:"image_id"`
		} `json:"cover"`
	}
	if err := json.Unmarshal(body, &games); err != nil {
		return nil, wrapError("search", gameName, fmt.Errorf("parse response: %w", err))
	}

	if len(games) == 0 || games[0].Cover == nil || games[0].Cover.ImageID == "" {
		return nil, wrapError("search", gameName, ErrNotFound)
	}

	g := games[0]
	return &Cover{
		GameName: g.Name,
		ImageID:  g.Cover.ImageID,
		URL:      c.coverURL(g.Cover.ImageID),
	}, nil
}

// FetchCover looks up a game's cover and downloads the image bytes.
// The returned content type is always image/jpeg; IGDB serves t_cover_big
// renditions as JPEG.
func (c *Client) FetchCover(ctx context.Context, gameName string) ([]byte, string, error) {
	cover, err := c.CoverInfo(ctx, gameName)
	if err != nil {
		return nil, "", err
	}

	if err := c.limiter.Wait(ctx, "igdb-images"); err != nil {
		return nil, "", wrapError("fetchCover", gameName, fmt.Errorf("rate limit wait: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cover.URL, nil)
	if err != nil {
		return nil, "", wrapError("fetchCover", gameName, fmt.Errorf("create request: %w", err))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", wrapError("fetchCover", gameName, fmt.Errorf("execute request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", wrapError("fetchCover", gameName, ErrNotFound)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxCoverBytes+1))
	if err != nil {
		return nil, "", wrapError("fetchCover", gameName, fmt.Errorf("read image: %w", err))
	}
	if len(data) > maxCoverBytes {
		return nil, "", wrapError("fetchCover", gameName, fmt.Errorf("image exceeds %d bytes", maxCoverBytes))
	}

	return data, "image/jpeg", nil
}

// coverURL builds the CDN URL for a cover image at box-art size.
func (c *Client) coverURL(imageID string) string {
	return fmt.Sprintf("%s/t_cover_big/%s.jpg", c.imageURL, imageID)
}

// doRequest executes an authenticated APIcalypse query against the IGDB API.
func (c *Client) doRequest(ctx context.Context, path, query string) ([]byte, error) {
	if err := c.limiter.Wait(ctx, "igdb"); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	tok, err := c.token.Token()
	if err != nil {
		return nil, fmt.Errorf("get access token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+path, strings.NewReader(query))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Client-ID", c.clientID)
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("igdb request", "path", path)

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
	default:
		if resp.StatusCode >= 500 {
			return nil, ErrServer
		}
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
}
