package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamedex/gamedex-server/internal/metadata/rawg"
)

// Upstream RAWG behavior is exercised in the rawg package tests; here we
// verify routing, game resolution and error mapping.

func TestGetGameMetadata_NotConfigured(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/games/doom/metadata")
	require.Equal(t, http.StatusServiceUnavailable, resp.Code)

	var apiErr APIError
	decodeBody(t, resp.Body.Bytes(), &apiErr)
	assert.Equal(t, "NOT_CONFIGURED", apiErr.Code)
}

func TestGetGameMetadata_UnknownGame(t *testing.T) {
	ts := setupTestServer(t)

	// Game resolution happens before the upstream call.
	resp := ts.api.Get("/api/v1/games/not-a-game/metadata")
	require.Equal(t, http.StatusNotFound, resp.Code)

	var apiErr APIError
	decodeBody(t, resp.Body.Bytes(), &apiErr)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
}

func TestMetadataResponsePlatformRequirements(t *testing.T) {
	details := &rawg.GameDetails{
		Name: "Doom",
		Platforms: []rawg.Platform{
			{
				Platform: rawg.Named{Name: "PC"},
				Requirements: &rawg.Requirements{
					Minimum:     "OS: 64-bit Windows 7",
					Recommended: "OS: 64-bit Windows 10",
				},
			},
			{Platform: rawg.Named{Name: "PlayStation 4"}},
		},
	}

	resp := toMetadataResponse(details)

	require.Len(t, resp.Platforms, 2)
	assert.Equal(t, "PC", resp.Platforms[0].Name)
	require.NotNil(t, resp.Platforms[0].Requirements)
	assert.Equal(t, "OS: 64-bit Windows 7", resp.Platforms[0].Requirements.Minimum)
	assert.Equal(t, "OS: 64-bit Windows 10", resp.Platforms[0].Requirements.Recommended)

	assert.Equal(t, "PlayStation 4", resp.Platforms[1].Name)
	assert.Nil(t, resp.Platforms[1].Requirements)
}

func TestGetGameScreenshots_NotConfigured(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/games/doom/screenshots")
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}

func TestGetGameMovies_NotConfigured(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/games/doom/movies")
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}
