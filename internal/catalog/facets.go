package catalog

import (
	"sort"

	"github.com/gamedex/gamedex-server/internal/domain"
)

// countFacets tallies occurrences of each value yielded by extract, then
// sorts buckets by descending count. The sort is stable so ties keep their
// first-seen order; the ordering is presentational only.
func countFacets(games []domain.Game, extract func(*domain.Game) []string) []domain.FacetCount {
	counts := make(map[string]int)
	var order []string

	for i := range games {
		for _, v := range extract(&games[i]) {
			if _, seen := counts[v]; !seen {
				order = append(order, v)
			}
			counts[v]++
		}
	}

	facets := make([]domain.FacetCount, 0, len(order))
	for _, v := range order {
		facets = append(facets, domain.FacetCount{Value: v, Count: counts[v]})
	}

	sort.SliceStable(facets, func(i, j int) bool {
		return facets[i].Count > facets[j].Count
	})

	return facets
}

// GenreFacets returns per-genre occurrence counts across the catalog.
// A game tagged with N genres contributes to N buckets.
func GenreFacets(games []domain.Game) []domain.FacetCount {
	return countFacets(games, func(g *domain.Game) []string { return g.Genres })
}

// SourceFacets returns per-storefront occurrence counts across the catalog.
// Multi-platform games contribute to one bucket per storefront.
func SourceFacets(games []domain.Game) []domain.FacetCount {
	return countFacets(games, func(g *domain.Game) []string { return g.Sources })
}

// ClassificationFacets returns per-tier occurrence counts across the catalog.
func ClassificationFacets(games []domain.Game) []domain.FacetCount {
	return countFacets(games, func(g *domain.Game) []string {
		if g.Classification == "" {
			return nil
		}
		return []string{g.Classification}
	})
}
