// Package recommend wires the catalog, feature matrix, index and matcher
// into an immutable Engine per recommendation mode.
package recommend

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mager/cochlea/catalog"
	"github.com/mager/cochlea/cochlea"
	"github.com/mager/cochlea/features"
	"github.com/mager/cochlea/index"
	"github.com/mager/cochlea/matcher"
)

var ErrUnknownMode = errors.New("recommend: unknown mode")

type Settings struct {
	// K is the neighbor count; 0 means index.DefaultK.
	K         int
	MatchMode matcher.Mode
	// Limit caps the assembled list and overrides the mode's own limit;
	// 0 defers to features.Config.Limit.
	Limit int
}

// Result is one answered request.
type Result struct {
	Mode   string          `json:"mode"`
	Match  cochlea.Track   `json:"match"`
	Tracks []cochlea.Track `json:"tracks"`
}

// Engine is built once per mode and only read afterwards, so one Engine
// serves concurrent requests without locking.
type Engine struct {
	catalog *catalog.Catalog
	matrix  *features.Matrix
	index   *index.Index
	matcher *matcher.Matcher
	limit   int
}

func NewEngine(cat *catalog.Catalog, cfg features.Config, opts Settings) (*Engine, error) {
	m, err := features.Build(cat, cfg)
	if err != nil {
		return nil, err
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = cfg.Limit
	}
	return &Engine{
		catalog: cat,
		matrix:  m,
		index:   index.New(m.Dense(), opts.K),
		matcher: matcher.New(cat.Entries(), opts.MatchMode),
		limit:   limit,
	}, nil
}

func (e *Engine) Mode() string {
	return e.matrix.Config().Name
}

func (e *Engine) Config() features.Config {
	return e.matrix.Config()
}

func (e *Engine) Matrix() *features.Matrix {
	return e.matrix
}

func (e *Engine) K() int {
	return e.index.K()
}

// Size is the number of indexed catalog rows.
func (e *Engine) Size() int {
	return e.index.Len()
}

func (e *Engine) MatchMode() matcher.Mode {
	return e.matcher.Mode()
}

// Recommend resolves the query and returns its neighbors. A query that does
// not resolve yields a *matcher.NoMatchFoundError.
func (e *Engine) Recommend(song, artist string) (*Result, error) {
	row, err := e.matcher.Match(song, artist)
	if err != nil {
		return nil, err
	}

	neighbors, err := e.index.Query(e.matrix.Row(row))
	if err != nil {
		return nil, fmt.Errorf("querying %s index: %w", e.Mode(), err)
	}

	entries := e.catalog.Entries()
	category := e.matrix.Config().Category
	matched := entries[row]
	return &Result{
		Mode: e.Mode(),
		Match: cochlea.Track{
			Name:   matched.Name,
			Artist: matched.Artist,
			Genre:  matched.Category(category),
		},
		Tracks: Assemble(entries, row, neighbors, category, e.limit),
	}, nil
}

// MoodExtremes lists the n happiest and n saddest tracks by standardized
// valence and energy. Happy tracks have both above 0.5, sad tracks have
// valence at or below the mean. n <= 0 yields two empty lists.
func (e *Engine) MoodExtremes(n int) (happy, sad []cochlea.Track, err error) {
	for _, f := range []catalog.Feature{catalog.Valence, catalog.Energy} {
		if _, ok := e.matrix.Scaler(f); !ok {
			return nil, nil, &features.ConfigurationError{Mode: e.Mode(), Feature: string(f), Reason: "mood extremes need"}
		}
	}
	if n <= 0 {
		return []cochlea.Track{}, []cochlea.Track{}, nil
	}

	type scored struct {
		row             int
		valence, energy float64
	}
	var up, down []scored
	for i := 0; i < e.matrix.Rows(); i++ {
		v, _ := e.matrix.Value(i, catalog.Valence)
		en, _ := e.matrix.Value(i, catalog.Energy)
		s := scored{row: i, valence: v, energy: en}
		if v > 0.5 && en > 0.5 {
			up = append(up, s)
		}
		if v <= 0 {
			down = append(down, s)
		}
	}

	sort.SliceStable(up, func(a, b int) bool {
		if up[a].valence != up[b].valence {
			return up[a].valence > up[b].valence
		}
		return up[a].energy > up[b].energy
	})
	sort.SliceStable(down, func(a, b int) bool {
		if down[a].valence != down[b].valence {
			return down[a].valence < down[b].valence
		}
		return down[a].energy < down[b].energy
	})

	toTracks := func(ss []scored) []cochlea.Track {
		if len(ss) > n {
			ss = ss[:n]
		}
		out := make([]cochlea.Track, 0, len(ss))
		for _, s := range ss {
			entry := e.catalog.Entry(s.row)
			out = append(out, cochlea.Track{
				Name:   entry.Name,
				Artist: entry.Artist,
				Genre:  entry.Category(e.matrix.Config().Category),
			})
		}
		return out
	}
	return toTracks(up), toTracks(down), nil
}
