package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitReport(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/reports", map[string]any{
		"game_name":   "Chrono Trigger",
		"game_id":     "chrono-trigger",
		"error_types": []string{"trailer", "storeLink"},
		"description": "Store link returns 404 and the trailer is for the DS port",
	})
	require.Equal(t, http.StatusOK, resp.Code, "submit failed: %s", resp.Body.String())

	var body struct {
		ID         string   `json:"id"`
		GameName   string   `json:"game_name"`
		ErrorTypes []string `json:"error_types"`
		Forwarded  bool     `json:"forwarded"`
	}
	decodeBody(t, resp.Body.Bytes(), &body)

	assert.True(t, strings.HasPrefix(body.ID, "rpt-"))
	assert.Equal(t, "Chrono Trigger", body.GameName)
	assert.Equal(t, []string{"trailer", "storeLink"}, body.ErrorTypes)
	assert.False(t, body.Forwarded)
}

func TestSubmitReport_Invalid(t *testing.T) {
	ts := setupTestServer(t)

	// Missing game_name and an unknown error type.
	resp := ts.api.Post("/api/v1/reports", map[string]any{
		"error_types": []string{"spoilers"},
	})
	require.Equal(t, http.StatusBadRequest, resp.Code)

	var apiErr APIError
	decodeBody(t, resp.Body.Bytes(), &apiErr)
	assert.Equal(t, "VALIDATION", apiErr.Code)
}

func TestListReports(t *testing.T) {
	ts := setupTestServer(t)

	for _, name := range []string{"Doom", "Celeste"} {
		resp := ts.api.Post("/api/v1/reports", map[string]any{
			"game_name":   name,
			"game_id":     strings.ToLower(name),
			"error_types": []string{"description"},
			"description": "wrong release year",
		})
		require.Equal(t, http.StatusOK, resp.Code)
	}

	resp := ts.api.Get("/api/v1/reports?limit=10")
	require.Equal(t, http.StatusOK, resp.Code)

	var body ListReportsResponse
	decodeBody(t, resp.Body.Bytes(), &body)

	require.Equal(t, 2, body.Total)
	// Newest first.
	assert.Equal(t, "Celeste", body.Reports[0].GameName)
	assert.Equal(t, "Doom", body.Reports[1].GameName)
}

func TestSubmitReport_RateLimited(t *testing.T) {
	ts := setupTestServer(t)

	// Exhaust the submission burst; the loop runs fast enough that the
	// limiter cannot refill in between.
	limited := false
	for i := 0; i < 10; i++ {
		resp := ts.api.Post("/api/v1/reports", map[string]any{
			"game_name":   "Doom",
			"game_id":     "doom",
			"error_types": []string{"other"},
			"description": "something else entirely",
		})
		if resp.Code == http.StatusTooManyRequests {
			var apiErr APIError
			decodeBody(t, resp.Body.Bytes(), &apiErr)
			assert.Equal(t, "RATE_LIMITED", apiErr.Code)
			limited = true
			break
		}
		require.Equal(t, http.StatusOK, resp.Code)
	}
	assert.True(t, limited, "expected a 429 within the burst window")
}
