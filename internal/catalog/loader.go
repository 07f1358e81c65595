// Package catalog implements the in-memory game catalog: loading and
// normalizing raw records, facet tables, filtering, the daily featured
// selection, and the pagination window.
//
// Everything in this package is pure and side-effect free: the catalog is
// built once from the source file and never mutated, so none of these
// operations need locking and all of them are safe to call per request.
package catalog

import (
	"fmt"

	"github.com/gamedex/gamedex-server/internal/domain"
	"github.com/gamedex/gamedex-server/internal/util"
)

// InvalidRecordError describes a catalog entry that was rejected at load
// time. Rejection is per record and never aborts the load.
type InvalidRecordError struct {
	Index int    // position of the record in the source file
	Field string // the offending field
}

// Error implements the error interface.
func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("record %d: missing required field %q", e.Index, e.Field)
}

// Load normalizes raw catalog records into games with unique IDs.
//
// IDs are slugs of the name; when two records slugify to the same string the
// later one probes slug-2, slug-3, ... until a free suffix is found. ID
// assignment depends only on the name and the input order, so the same file
// always produces the same ID set — IDs are permanent routing keys.
//
// Records with an empty name are dropped and reported in the returned slice
// of InvalidRecordErrors. Callers should log the count for observability.
func Load(records []domain.RawRecord) ([]domain.Game, []*InvalidRecordError) {
	games := make([]domain.Game, 0, len(records))
	var invalid []*InvalidRecordError
	usedIDs := make(map[string]struct{}, len(records))

	for i, raw := range records {
		if raw.Name == "" {
			invalid = append(invalid, &InvalidRecordError{Index: i, Field: "Name"})
			continue
		}

		id := util.Slugify(raw.Name)
		if _, taken := usedIDs[id]; taken {
			for n := 2; ; n++ {
				candidate := fmt.Sprintf("%s-%d", id, n)
				if _, taken := usedIDs[candidate]; !taken {
					id = candidate
					break
				}
			}
		}
		usedIDs[id] = struct{}{}

		sources := []string(raw.Source)
		if sources == nil {
			sources = []string{}
		}

		games = append(games, domain.Game{
			ID:             id,
			Name:           raw.Name,
			Description:    raw.Description,
			ReleaseYear:    raw.ReleaseYear,
			Genres:         raw.Genres,
			Sources:        sources,
			Classification: raw.Classification,
			TrailerYoutube: raw.TrailerYoutube,
			StoreLinks:     raw.StoreLinks,
		})
	}

	return games, invalid
}
