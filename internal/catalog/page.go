package catalog

import (
	"strings"

	"github.com/gamedex/gamedex-server/internal/domain"
)

// DefaultPageSize is the initial pagination window: the number of cards the
// display layer renders before asking for more.
const DefaultPageSize = 24

// Window returns the visible prefix of a filtered result, clamped to its
// length. visible values below one fall back to the default page size.
func Window(games []domain.Game, visible int) []domain.Game {
	if visible <= 0 {
		visible = DefaultPageSize
	}
	if visible > len(games) {
		visible = len(games)
	}
	return games[:visible]
}

// HasMore reports whether the filtered result extends past the window.
func HasMore(total, visible int) bool {
	return visible < total
}

// Pager tracks the growing pagination window for one consumer. The window
// grows by a page each time more content is requested and snaps back to the
// first page whenever the filter criteria change — stale pagination state
// must never survive a filter change.
type Pager struct {
	pageSize    int
	visible     int
	fingerprint string
}

// NewPager creates a pager with the default page size.
func NewPager() *Pager {
	return &Pager{pageSize: DefaultPageSize, visible: DefaultPageSize}
}

// Observe records the criteria for the current request, resetting the
// window when they differ from the previous request's.
func (p *Pager) Observe(criteria domain.FilterCriteria) {
	fp := fingerprint(criteria)
	if fp != p.fingerprint {
		p.fingerprint = fp
		p.visible = p.pageSize
	}
}

// Advance grows the window by one page, clamped to total.
func (p *Pager) Advance(total int) {
	p.visible += p.pageSize
	if p.visible > total {
		p.visible = total
	}
}

// Visible returns the current window size.
func (p *Pager) Visible() int {
	return p.visible
}

// fingerprint builds a canonical key for a criteria value. Selections are
// order-sensitive on purpose: the display layer sends them in a stable order.
func fingerprint(c domain.FilterCriteria) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(c.SearchText))
	for _, part := range [][]string{c.Genres, c.Sources, c.Classifications} {
		b.WriteByte('|')
		b.WriteString(strings.Join(part, ","))
	}
	return b.String()
}
