// Package domain contains the core entities of the Gamedex server.
package domain

// RawRecord is a single entry of the source catalog file, exactly as the
// curator wrote it. Source may be a bare string or a list; everything else
// is taken at face value.
type RawRecord struct {
	Name           string            `json:"Name"`
	Description    string            `json:"Description"`
	ReleaseYear    int               `json:"ReleaseYear"`
	Genres         []string          `json:"Genres"`
	Source         StringOrSlice     `json:"Source"`
	Classification string            `json:"Classification"`
	TrailerYoutube string            `json:"TrailerYoutube,omitempty"`
	StoreLinks     map[string]string `json:"StoreLinks,omitempty"`
}

// Game is a normalized catalog entry. Immutable after load: the catalog is
// parsed once and only replaced wholesale when the source file changes.
type Game struct {
	// ID is a URL-safe slug derived from Name, unique across the catalog.
	// IDs are permanent routing keys; collisions get a numeric suffix.
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	ReleaseYear    int               `json:"release_year"`
	Genres         []string          `json:"genres"`
	Sources        []string          `json:"sources"`
	Classification string            `json:"classification"`
	TrailerYoutube string            `json:"trailer_youtube,omitempty"`
	StoreLinks     map[string]string `json:"store_links,omitempty"`
}

// HasGenre reports whether the game carries the given genre tag.
func (g *Game) HasGenre(genre string) bool {
	for _, x := range g.Genres {
		if x == genre {
			return true
		}
	}
	return false
}

// HasSource reports whether the game is owned on the given storefront.
func (g *Game) HasSource(source string) bool {
	for _, x := range g.Sources {
		if x == source {
			return true
		}
	}
	return false
}

// FilterCriteria is one query against the catalog. Empty selections mean
// "no constraint on this facet"; selections within a facet are OR-ed, the
// facets themselves are AND-ed.
type FilterCriteria struct {
	SearchText      string   `json:"search_text"`
	Genres          []string `json:"genres"`
	Sources         []string `json:"sources"`
	Classifications []string `json:"classifications"`
}

// IsEmpty reports whether the criteria constrain nothing.
func (c FilterCriteria) IsEmpty() bool {
	return c.SearchText == "" &&
		len(c.Genres) == 0 &&
		len(c.Sources) == 0 &&
		len(c.Classifications) == 0
}

// FacetCount is one bucket of a facet table.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}
