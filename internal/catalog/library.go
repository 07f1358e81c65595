package catalog

import (
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/gamedex/gamedex-server/internal/domain"
)

// Snapshot is one immutable parse of the catalog file: the normalized games,
// a by-ID index, and the prebuilt facet tables. Facets are rebuilt on reload,
// not per query.
type Snapshot struct {
	Games           []domain.Game
	Genres          []domain.FacetCount
	Sources         []domain.FacetCount
	Classifications []domain.FacetCount

	byID map[string]*domain.Game
}

// Get returns a game by its slug ID.
func (s *Snapshot) Get(id string) (*domain.Game, bool) {
	g, ok := s.byID[id]
	return g, ok
}

// Library owns the current catalog snapshot. Readers grab the snapshot with
// an atomic load; Reload swaps in a fresh one wholesale, so a query never
// observes a half-built catalog.
type Library struct {
	path     string
	logger   *slog.Logger
	snapshot atomic.Pointer[Snapshot]
}

// NewLibrary creates a library for the given catalog file and performs the
// initial load.
func NewLibrary(path string, logger *slog.Logger) (*Library, error) {
	l := &Library{path: path, logger: logger}
	if err := l.Reload(); err != nil {
		return nil, err
	}
	return l, nil
}

// Snapshot returns the current catalog snapshot.
func (l *Library) Snapshot() *Snapshot {
	return l.snapshot.Load()
}

// Reload re-reads the catalog file and swaps in a new snapshot. On failure
// the previous snapshot stays in place and the error is returned.
func (l *Library) Reload() error {
	file, err := os.Open(l.path)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer file.Close()

	var records []domain.RawRecord
	if err := json.UnmarshalRead(file, &records); err != nil {
		return fmt.Errorf("parse catalog: %w", err)
	}

	games, invalid := Load(records)
	if len(invalid) > 0 {
		l.logger.Warn("dropped malformed catalog records",
			"dropped", len(invalid),
			"first", invalid[0].Error(),
		)
	}

	snap := &Snapshot{
		Games:           games,
		Genres:          GenreFacets(games),
		Sources:         SourceFacets(games),
		Classifications: ClassificationFacets(games),
		byID:            make(map[string]*domain.Game, len(games)),
	}
	for i := range games {
		snap.byID[games[i].ID] = &games[i]
	}

	l.snapshot.Store(snap)
	l.logger.Info("catalog loaded",
		"path", l.path,
		"games", len(games),
		"dropped", len(invalid),
	)

	return nil
}
