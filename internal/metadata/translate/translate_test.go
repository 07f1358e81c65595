package translate

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamedex/gamedex-server/internal/logger"
)

func testLogger() *logger.Logger {
	return &logger.Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))}
}

func newTestTranslator(t *testing.T, handler http.HandlerFunc) *Translator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tr := New(true, testLogger())
	tr.baseURL = srv.URL
	t.Cleanup(tr.Close)
	return tr
}

func TestTranslate_Success(t *testing.T) {
	tr := newTestTranslator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "en", r.URL.Query().Get("sl"))
		assert.Equal(t, "pt", r.URL.Query().Get("tl"))
		assert.Equal(t, "An open world RPG.", r.URL.Query().Get("q"))

		w.Write([]byte(`[[["Um RPG de mundo aberto.","An open world RPG.",null,null,10]],null,"en"]`))
	})

	got := tr.Translate(context.Background(), "An open world RPG.")
	assert.Equal(t, "Um RPG de mundo aberto.", got)
}

func TestTranslate_MultipleSegments(t *testing.T) {
	tr := newTestTranslator(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[[["Primeira frase. ","First sentence. "],["Segunda frase.","Second sentence."]],null,"en"]`))
	})

	got := tr.Translate(context.Background(), "First sentence. Second sentence.")
	assert.Equal(t, "Primeira frase. Segunda frase.", got)
}

func TestTranslate_FallsBackOnServerError(t *testing.T) {
	tr := newTestTranslator(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	got := tr.Translate(context.Background(), "Original text.")
	assert.Equal(t, "Original text.", got)
}

func TestTranslate_FallsBackOnGarbage(t *testing.T) {
	tr := newTestTranslator(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`not json at all`))
	})

	got := tr.Translate(context.Background(), "Original text.")
	assert.Equal(t, "Original text.", got)
}

func TestTranslate_DisabledPassesThrough(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))
	defer srv.Close()

	tr := New(false, testLogger())
	tr.baseURL = srv.URL
	defer tr.Close()

	got := tr.Translate(context.Background(), "Stay in English.")
	assert.Equal(t, "Stay in English.", got)
	assert.False(t, called, "disabled translator should make no requests")
}

func TestTranslate_EmptyText(t *testing.T) {
	tr := New(true, testLogger())
	defer tr.Close()

	assert.Equal(t, "", tr.Translate(context.Background(), ""))
}

func TestTruncate_RuneBoundary(t *testing.T) {
	// "ção" repeated: every "ç" and "ã" is two bytes, so most byte offsets
	// land mid-rune.
	text := strings.Repeat("ção", 100)

	for _, max := range []int{7, 8, 9, 10} {
		got := truncate(text, max)
		assert.LessOrEqual(t, len(got), max)
		assert.True(t, utf8.ValidString(got), "truncate(%d) produced invalid UTF-8", max)
	}

	assert.Equal(t, "short", truncate("short", 100))
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{
			name: "single segment",
			body: `[[["Olá","Hello"]],null,"en"]`,
			want: "Olá",
		},
		{
			name:    "empty array",
			body:    `[]`,
			wantErr: true,
		},
		{
			name:    "wrong shape",
			body:    `["nope"]`,
			wantErr: true,
		},
		{
			name:    "no segments",
			body:    `[[],null,"en"]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseResponse([]byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
