package catalog

import (
	"sort"
	"strconv"
	"time"

	"github.com/gamedex/gamedex-server/internal/domain"
)

// Featured selection sizes for the two promotional shelves.
const (
	FeaturedAAACount     = 6
	FeaturedClassicCount = 6

	// classicYearCutoff: games released before this year count as classics.
	classicYearCutoff = 2015
)

// DailySeed derives the shuffle seed from a date: year*10000 + month*100 + day.
// The selection is stable for a whole calendar day and rolls over at local
// midnight.
func DailySeed(now time.Time) int {
	return now.Year()*10000 + int(now.Month())*100 + now.Day()
}

// hashString is a 32-bit rolling hash: h = (h<<5) - h + ch over each byte,
// wrapping in signed 32-bit arithmetic, absolute value taken. The constants
// are pinned so the daily selection is bit-identical across restarts and
// platforms.
func hashString(s string) int64 {
	var h int32
	for i := 0; i < len(s); i++ {
		h = (h << 5) - h + int32(s[i])
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return v
}

// shuffleBySeed returns the games ordered by the hash of id+seed, ascending.
// The sort is stable, so equal hashes keep catalog order. The input is not
// mutated.
func shuffleBySeed(games []domain.Game, seed int) []domain.Game {
	shuffled := make([]domain.Game, len(games))
	copy(shuffled, games)

	suffix := strconv.Itoa(seed)
	sort.SliceStable(shuffled, func(i, j int) bool {
		return hashString(shuffled[i].ID+suffix) < hashString(shuffled[j].ID+suffix)
	})

	return shuffled
}

// SelectFeatured picks the two disjoint promotional sets for the day:
// AAA games shuffled with the seed, and pre-2015 classics (excluding any
// game already featured as AAA) shuffled with seed+1 so the two orderings
// are independent. If fewer qualifying games exist than requested, all of
// them are returned — no padding, no error.
func SelectFeatured(games []domain.Game, seed, countA, countB int) (aaa, classics []domain.Game) {
	var aaaPool []domain.Game
	for i := range games {
		if games[i].Classification == "AAA" {
			aaaPool = append(aaaPool, games[i])
		}
	}
	aaa = take(shuffleBySeed(aaaPool, seed), countA)

	featured := make(map[string]struct{}, len(aaa))
	for i := range aaa {
		featured[aaa[i].ID] = struct{}{}
	}

	var classicPool []domain.Game
	for i := range games {
		if games[i].ReleaseYear >= classicYearCutoff {
			continue
		}
		if _, taken := featured[games[i].ID]; taken {
			continue
		}
		classicPool = append(classicPool, games[i])
	}
	classics = take(shuffleBySeed(classicPool, seed+1), countB)

	return aaa, classics
}

func take(games []domain.Game, n int) []domain.Game {
	if n > len(games) {
		n = len(games)
	}
	return games[:n]
}
