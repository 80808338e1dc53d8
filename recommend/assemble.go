package recommend

import (
	"github.com/mager/cochlea/catalog"
	"github.com/mager/cochlea/cochlea"
	"github.com/mager/cochlea/index"
)

// Assemble turns neighbor rows into the recommendation list. The matched row
// and any other listing of the same (name, artist) are skipped, as are
// repeated pairs. Neighbor order is kept. limit > 0 caps the output.
func Assemble(entries []catalog.Entry, matched int, neighbors []index.Neighbor, category string, limit int) []cochlea.Track {
	query := cochlea.Pair{Name: entries[matched].Name, Artist: entries[matched].Artist}

	seen := map[cochlea.Pair]bool{query: true}
	out := make([]cochlea.Track, 0, len(neighbors))
	for _, n := range neighbors {
		if n.Row == matched {
			continue
		}
		e := entries[n.Row]
		p := cochlea.Pair{Name: e.Name, Artist: e.Artist}
		if seen[p] {
			continue
		}
		seen[p] = true

		out = append(out, cochlea.Track{
			Name:     e.Name,
			Artist:   e.Artist,
			Genre:    e.Category(category),
			Distance: n.Distance,
		})
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
