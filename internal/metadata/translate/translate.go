// Package translate provides best-effort English to Brazilian Portuguese
// translation of game descriptions using the public Google Translate
// endpoint. Translation failures are never fatal: callers always get text
// back, falling back to the original input.
package translate

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gamedex/gamedex-server/internal/logger"
	"github.com/gamedex/gamedex-server/internal/ratelimit"
)

const (
	defaultBaseURL = "https://translate.googleapis.com/translate_a/single"
	defaultTimeout = 15 * time.Second

	// The endpoint is unauthenticated; stay well under its tolerance.
	defaultRPS   = 2.0
	defaultBurst = 2

	// Long descriptions are sent in one request; the endpoint handles a few
	// thousand characters fine but hard-cap to avoid 413s.
	maxChunkLen = 4500
)

// Translator translates text to Brazilian Portuguese.
type Translator struct {
	http    *http.Client
	limiter *ratelimit.KeyedRateLimiter
	logger  *logger.Logger
	baseURL string
	enabled bool
}

// New creates a translator. When enabled is false, Translate returns its
// input unchanged without any network calls.
func New(enabled bool, log *logger.Logger) *Translator {
	return &Translator{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: ratelimit.New(defaultRPS, defaultBurst),
		logger:  log,
		baseURL: defaultBaseURL,
		enabled: enabled,
	}
}

// Close releases resources held by the translator.
func (t *Translator) Close() {
	t.limiter.Stop()
}

// Translate converts English text to Brazilian Portuguese. On any failure
// the original text is returned, so metadata lookups still succeed when the
// translation endpoint is down.
func (t *Translator) Translate(ctx context.Context, text string) string {
	if !t.enabled || text == "" {
		return text
	}

	text = truncate(text, maxChunkLen)

	translated, err := t.translate(ctx, text)
	if err != nil {
		t.logger.WithError(err).Warn("translation failed, keeping original text")
		return text
	}
	return translated
}

// truncate caps text at max bytes without splitting a rune, so the endpoint
// never receives invalid UTF-8.
func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	for max > 0 && !utf8.RuneStart(text[max]) {
		max--
	}
	return text[:max]
}

func (t *Translator) translate(ctx context.Context, text string) (string, error) {
	if err := t.limiter.Wait(ctx, "translate"); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	query := url.Values{}
	query.Set("client", "gtx")
	query.Set("sl", "en")
	query.Set("tl", "pt")
	query.Set("dt", "t")
	query.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Gamedex/1.0")

	resp, err := t.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	return parseResponse(body)
}

// parseResponse extracts translated text from the endpoint's nested-array
// response: [[["translated","original",...], ...], ...]. Sentences come back
// as separate segments that concatenate into the full translation.
func parseResponse(body []byte) (string, error) {
	var raw []any
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}

	if len(raw) == 0 {
		return "", fmt.Errorf("empty response")
	}

	segments, ok := raw[0].([]any)
	if !ok {
		return "", fmt.Errorf("unexpected response shape")
	}

	var b strings.Builder
	for _, seg := range segments {
		parts, ok := seg.([]any)
		if !ok || len(parts) == 0 {
			continue
		}
		if s, ok := parts[0].(string); ok {
			b.WriteString(s)
		}
	}

	if b.Len() == 0 {
		return "", fmt.Errorf("no translated segments")
	}
	return b.String(), nil
}
