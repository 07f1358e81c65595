package igdb

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamedex/gamedex-server/internal/logger"
)

func testLogger() *logger.Logger {
	return &logger.Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))}
}

// fakeTwitch stands in for the Twitch OAuth token endpoint and counts how
// many tokens it issued.
func fakeTwitch(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var issued atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		body, _ := io.ReadAll(r.Body)
		params := string(body)
		require.Contains(t, params, "grant_type=client_credentials")

		issued.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"fake-token","expires_in":5587808,"token_type":"bearer"}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &issued
}

// newTestClient wires a client to fake Twitch, IGDB API and image servers.
func newTestClient(t *testing.T, api, images http.Handler) (*Client, *atomic.Int32) {
	t.Helper()

	twitch, issued := fakeTwitch(t)

	apiSrv := httptest.NewServer(api)
	t.Cleanup(apiSrv.Close)

	c := New(context.Background(), "test-id", "test-secret", testLogger())
	t.Cleanup(c.Close)
	c.apiURL = apiSrv.URL
	c.token = newTokenSource(context.Background(), "test-id", "test-secret", twitch.URL)

	if images != nil {
		imgSrv := httptest.NewServer(images)
		t.Cleanup(imgSrv.Close)
		c.imageURL = imgSrv.URL
	}

	return c, issued
}

func TestCoverInfo(t *testing.T) {
	api := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/games", r.URL.Path)
		assert.Equal(t, "test-id", r.Header.Get("Client-ID"))
		assert.Equal(t, "Bearer fake-token", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), `search "Hollow Knight"`)

		w.Write([]byte(`[{"id":26286,"name":"Hollow Knight","cover":{"url":"//images.igdb.com/igdb/image/upload/t_thumb/co1rgi.jpg","image_id":"co1rgi"}}]`))
	})

	c, _ := newTestClient(t, api, nil)

	cover, err := c.CoverInfo(context.Background(), "Hollow Knight")
	require.NoError(t, err)
	assert.Equal(t, "Hollow Knight", cover.GameName)
	assert.Equal(t, "co1rgi", cover.ImageID)
	assert.Contains(t, cover.URL, "/t_cover_big/co1rgi.jpg")
}

func TestCoverInfo_NoCover(t *testing.T) {
	api := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[{"id":999,"name":"Obscure Game"}]`))
	})

	c, _ := newTestClient(t, api, nil)

	_, err := c.CoverInfo(context.Background(), "Obscure Game")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCoverInfo_EmptyResults(t *testing.T) {
	api := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[]`))
	})

	c, _ := newTestClient(t, api, nil)

	_, err := c.CoverInfo(context.Background(), "Nothing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchCover(t *testing.T) {
	api := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[{"id":26286,"name":"Hollow Knight","cover":{"image_id":"co1rgi"}}]`))
	})

	jpeg := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}
	images := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/t_cover_big/co1rgi.jpg"))
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(jpeg)
	})

	c, _ := newTestClient(t, api, images)

	data, contentType, err := c.FetchCover(context.Background(), "Hollow Knight")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", contentType)
	assert.Equal(t, jpeg, data)
}

func TestFetchCover_ImageGone(t *testing.T) {
	api := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[{"id":1,"name":"Gone","cover":{"image_id":"missing"}}]`))
	})
	images := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	c, _ := newTestClient(t, api, images)

	_, _, err := c.FetchCover(context.Background(), "Gone")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTokenIsReused(t *testing.T) {
	api := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[{"id":1,"name":"Game","cover":{"image_id":"abc"}}]`))
	})

	c, issued := newTestClient(t, api, nil)

	for i := 0; i < 3; i++ {
		_, err := c.CoverInfo(context.Background(), "Game")
		require.NoError(t, err)
	}

	// One client-credentials exchange covers all three API calls.
	assert.Equal(t, int32(1), issued.Load())
}

func TestNotConfigured(t *testing.T) {
	c := New(context.Background(), "", "", testLogger())
	defer c.Close()

	assert.False(t, c.Configured())

	_, err := c.CoverInfo(context.Background(), "Doom")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, _, err = c.FetchCover(context.Background(), "Doom")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestServerError(t *testing.T) {
	api := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	c, _ := newTestClient(t, api, nil)

	_, err := c.CoverInfo(context.Background(), "Doom")
	assert.ErrorIs(t, err, ErrServer)
}
