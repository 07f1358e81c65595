package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/gamedex/gamedex-server/internal/domain"
)

// Filter applies the criteria to the catalog and returns a new, sorted view.
// The input slice is never mutated and the same (games, criteria) pair always
// yields an identical result.
//
// The predicate is a conjunction: search text must match name or description
// (case-insensitive substring), and each non-empty facet selection must
// contain at least one of the game's values. Results are ordered by name
// under Brazilian Portuguese collation, accent- and case-insensitive, so
// "É" sorts next to "E" rather than after "Z".
func Filter(games []domain.Game, criteria domain.FilterCriteria) []domain.Game {
	search := strings.ToLower(criteria.SearchText)
	genres := toSet(criteria.Genres)
	sources := toSet(criteria.Sources)
	classifications := toSet(criteria.Classifications)

	result := make([]domain.Game, 0, len(games))
	for i := range games {
		g := &games[i]
		if !matchesSearch(g, search) {
			continue
		}
		if len(genres) > 0 && !anyMember(g.Genres, genres) {
			continue
		}
		if len(sources) > 0 && !anyMember(g.Sources, sources) {
			continue
		}
		if len(classifications) > 0 {
			if _, ok := classifications[g.Classification]; !ok {
				continue
			}
		}
		result = append(result, *g)
	}

	// Collators carry internal buffers, so build one per call rather than
	// sharing across requests.
	c := collate.New(language.BrazilianPortuguese, collate.Loose)
	sort.SliceStable(result, func(i, j int) bool {
		return c.CompareString(result[i].Name, result[j].Name) < 0
	})

	return result
}

func matchesSearch(g *domain.Game, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(g.Name), search) ||
		strings.Contains(strings.ToLower(g.Description), search)
}

func anyMember(values []string, set map[string]struct{}) bool {
	for _, v := range values {
		if _, ok := set[v]; ok {
			return true
		}
	}
	return false
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
