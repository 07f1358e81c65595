package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gamedex/gamedex-server/internal/domain"
)

func pageTestGames(n int) []domain.Game {
	games := make([]domain.Game, n)
	for i := range games {
		games[i] = domain.Game{ID: fmt.Sprintf("game-%d", i)}
	}
	return games
}

func TestWindow_ReturnsClampedPrefix(t *testing.T) {
	games := pageTestGames(100)

	window := Window(games, 24)
	assert.Len(t, window, 24)
	assert.Equal(t, "game-0", window[0].ID)
	assert.Equal(t, "game-23", window[23].ID)

	assert.Len(t, Window(games, 500), 100)
	assert.Len(t, Window(pageTestGames(10), 24), 10)
}

func TestWindow_NonPositiveVisibleFallsBackToPageSize(t *testing.T) {
	games := pageTestGames(100)

	assert.Len(t, Window(games, 0), DefaultPageSize)
	assert.Len(t, Window(games, -5), DefaultPageSize)
}

func TestHasMore(t *testing.T) {
	assert.True(t, HasMore(100, 24))
	assert.False(t, HasMore(24, 24))
	assert.False(t, HasMore(10, 24))
}

func TestPager_AdvanceGrowsByPageSize(t *testing.T) {
	p := NewPager()
	assert.Equal(t, DefaultPageSize, p.Visible())

	p.Advance(100)
	assert.Equal(t, 48, p.Visible())

	p.Advance(100)
	p.Advance(100)
	assert.Equal(t, 96, p.Visible())

	// Clamped to total.
	p.Advance(100)
	assert.Equal(t, 100, p.Visible())
}

func TestPager_ResetsWhenCriteriaChange(t *testing.T) {
	p := NewPager()
	rpg := domain.FilterCriteria{Genres: []string{"RPG"}}

	p.Observe(rpg)
	p.Advance(100)
	p.Advance(100)
	assert.Equal(t, 72, p.Visible())

	// Same criteria again: window survives.
	p.Observe(rpg)
	assert.Equal(t, 72, p.Visible())

	// Changed criteria: back to the first page.
	p.Observe(domain.FilterCriteria{Genres: []string{"RPG"}, SearchText: "dragon"})
	assert.Equal(t, DefaultPageSize, p.Visible())
}
