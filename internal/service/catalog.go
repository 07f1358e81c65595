// Package service holds the business logic between the HTTP handlers and the
// catalog, metadata and storage layers.
package service

import (
	"time"

	"github.com/gamedex/gamedex-server/internal/catalog"
	"github.com/gamedex/gamedex-server/internal/domain"
	domainerrors "github.com/gamedex/gamedex-server/internal/errors"
	"github.com/gamedex/gamedex-server/internal/logger"
)

// GamePage is one window into a filtered, sorted game list.
type GamePage struct {
	Games   []domain.Game
	Total   int
	Visible int
	HasMore bool
}

// Featured holds the two daily featured rows.
type Featured struct {
	AAA      []domain.Game
	Classics []domain.Game
}

// CatalogService answers catalog queries against the current library snapshot.
type CatalogService struct {
	library *catalog.Library
	logger  *logger.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(library *catalog.Library, log *logger.Logger) *CatalogService {
	return &CatalogService{
		library: library,
		logger:  log,
	}
}

// ListGames filters and sorts the catalog, then returns the first `visible`
// games. visible <= 0 falls back to the default page size.
func (s *CatalogService) ListGames(criteria domain.FilterCriteria, visible int) *GamePage {
	snap := s.library.Snapshot()

	filtered := catalog.Filter(snap.Games, criteria)
	window := catalog.Window(filtered, visible)

	return &GamePage{
		Games:   window,
		Total:   len(filtered),
		Visible: len(window),
		HasMore: catalog.HasMore(len(filtered), len(window)),
	}
}

// GetGame returns a game by its slug ID.
func (s *CatalogService) GetGame(id string) (*domain.Game, error) {
	game, ok := s.library.Snapshot().Get(id)
	if !ok {
		return nil, domainerrors.NotFoundf("game %q not found", id)
	}
	return game, nil
}

// Facets returns the prebuilt frequency tables for the current snapshot.
func (s *CatalogService) Facets() (genres, sources, classifications []domain.FacetCount) {
	snap := s.library.Snapshot()
	return snap.Genres, snap.Sources, snap.Classifications
}

// FeaturedFor selects the two featured rows for the given day. The selection
// is deterministic per calendar date and rotates at midnight.
func (s *CatalogService) FeaturedFor(now time.Time) *Featured {
	snap := s.library.Snapshot()
	seed := catalog.DailySeed(now)

	aaa, classics := catalog.SelectFeatured(snap.Games, seed, catalog.FeaturedAAACount, catalog.FeaturedClassicCount)
	return &Featured{
		AAA:      aaa,
		Classics: classics,
	}
}

// GameCount returns the number of games in the current snapshot.
func (s *CatalogService) GameCount() int {
	return len(s.library.Snapshot().Games)
}

// Reload re-reads the catalog file. Used by the file watcher.
func (s *CatalogService) Reload() error {
	return s.library.Reload()
}
