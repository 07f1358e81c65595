package api

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// coverPNG returns a small decodable PNG for blurhash computation.
func coverPNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 20, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 20; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 12), G: uint8(y * 8), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestServeCover(t *testing.T) {
	ts := setupTestServer(t)
	require.NoError(t, ts.storage.Save("celeste", coverPNG(t)))

	req := httptest.NewRequest(http.MethodGet, "/covers/celeste", nil)
	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, coverCacheControl, rec.Header().Get("Cache-Control"))
	assert.NotEmpty(t, rec.Header().Get("ETag"))
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestServeCover_NotModified(t *testing.T) {
	ts := setupTestServer(t)
	require.NoError(t, ts.storage.Save("celeste", coverPNG(t)))

	req := httptest.NewRequest(http.MethodGet, "/covers/celeste", nil)
	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req = httptest.NewRequest(http.MethodGet, "/covers/celeste", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	ts.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotModified, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
	// The 304 repeats the validators the 200 carried.
	assert.Equal(t, etag, rec.Header().Get("ETag"))
	assert.Equal(t, coverCacheControl, rec.Header().Get("Cache-Control"))
}

func TestServeCover_UnknownGame(t *testing.T) {
	ts := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/covers/not-a-game", nil)
	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServeCover_MissWithoutIGDB(t *testing.T) {
	ts := setupTestServer(t)

	// No stored cover and no IGDB credentials.
	req := httptest.NewRequest(http.MethodGet, "/covers/doom", nil)
	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetCoverInfo(t *testing.T) {
	ts := setupTestServer(t)
	require.NoError(t, ts.storage.Save("celeste", coverPNG(t)))

	resp := ts.api.Get("/api/v1/games/celeste/cover/info")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		GameID   string `json:"game_id"`
		URL      string `json:"url"`
		BlurHash string `json:"blur_hash"`
		Width    int    `json:"width"`
		Height   int    `json:"height"`
		ETag     string `json:"etag"`
	}
	decodeBody(t, resp.Body.Bytes(), &body)

	assert.Equal(t, "celeste", body.GameID)
	assert.Equal(t, "/covers/celeste", body.URL)
	assert.NotEmpty(t, body.BlurHash)
	assert.Equal(t, 20, body.Width)
	assert.Equal(t, 30, body.Height)
	assert.Len(t, body.ETag, 64)
}

func TestGetGameCover_Redirect(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/games/doom/cover")
	require.Equal(t, http.StatusTemporaryRedirect, resp.Code)
	assert.Equal(t, "/covers/doom", resp.Header().Get("Location"))
}
