// Package catalog loads the song table the recommender works over.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Feature names a numeric audio feature column.
type Feature string

const (
	Speechiness  Feature = "speechiness"
	Tempo        Feature = "tempo"
	Danceability Feature = "danceability"
	Energy       Feature = "energy"
	Valence      Feature = "valence"
)

// KnownFeatures lists every numeric column the loader parses.
var KnownFeatures = []Feature{Speechiness, Tempo, Danceability, Energy, Valence}

const (
	ColumnName     = "track_name"
	ColumnArtist   = "track_artist"
	ColumnSubgenre = "playlist_subgenre"
)

// ErrMissingColumn is matched by every *MissingColumnError.
var ErrMissingColumn = errors.New("catalog: missing column")

type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("catalog: missing column %q", e.Column)
}

func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

// Entry is one song. Entries are never mutated after load.
type Entry struct {
	Name       string
	Artist     string
	Categories map[string]string
	Features   map[Feature]float64
}

// Category returns the value of a categorical column, or "" if it was not loaded.
func (e Entry) Category(column string) string {
	return e.Categories[column]
}

func (e Entry) Feature(f Feature) (float64, bool) {
	v, ok := e.Features[f]
	return v, ok
}

type LoadOptions struct {
	// Categories are the text columns kept on every entry. Each must exist.
	Categories []string
	// RequiredFeatures must exist as columns; rows missing a value for any
	// of them are dropped.
	RequiredFeatures []Feature
}

// Catalog is the immutable, ordered set of entries. Row positions are stable
// and are what the feature matrix and the index refer to.
type Catalog struct {
	entries    []Entry
	features   map[Feature]bool
	categories map[string]bool
	dropped    int
}

// LoadFile opens path and loads it with Load.
func LoadFile(path string, opts LoadOptions) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	defer f.Close()

	return Load(f, opts)
}

// Load reads a CSV with a header row. Rows with an empty name or artist are
// dropped, as are rows lacking a usable value for a required feature.
func Load(r io.Reader, opts LoadOptions) (*Catalog, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("catalog: reading header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}

	required := []string{ColumnName, ColumnArtist}
	required = append(required, opts.Categories...)
	for _, f := range opts.RequiredFeatures {
		required = append(required, string(f))
	}
	for _, c := range required {
		if _, ok := cols[c]; !ok {
			return nil, &MissingColumnError{Column: c}
		}
	}

	present := make([]Feature, 0, len(KnownFeatures))
	for _, f := range KnownFeatures {
		if _, ok := cols[string(f)]; ok {
			present = append(present, f)
		}
	}
	isRequired := make(map[Feature]bool, len(opts.RequiredFeatures))
	for _, f := range opts.RequiredFeatures {
		isRequired[f] = true
	}

	c := &Catalog{
		features:   make(map[Feature]bool, len(present)),
		categories: make(map[string]bool, len(opts.Categories)),
	}
	for _, col := range opts.Categories {
		c.categories[col] = true
	}

	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("catalog: line %d: %w", line, err)
		}

		name := strings.TrimSpace(rec[cols[ColumnName]])
		artist := strings.TrimSpace(rec[cols[ColumnArtist]])
		if name == "" || artist == "" {
			c.dropped++
			continue
		}

		e := Entry{
			Name:       name,
			Artist:     artist,
			Categories: make(map[string]string, len(opts.Categories)),
			Features:   make(map[Feature]float64, len(present)),
		}
		for _, col := range opts.Categories {
			e.Categories[col] = strings.TrimSpace(rec[cols[col]])
		}

		keep := true
		for _, f := range present {
			v, ok := parseFloat(rec[cols[string(f)]])
			if !ok {
				if isRequired[f] {
					keep = false
					break
				}
				continue
			}
			e.Features[f] = v
		}
		if !keep {
			c.dropped++
			continue
		}

		c.entries = append(c.entries, e)
	}

	// A feature is usable only when every retained row carries it.
	for _, f := range present {
		complete := true
		for _, e := range c.entries {
			if _, ok := e.Features[f]; !ok {
				complete = false
				break
			}
		}
		c.features[f] = complete
	}

	return c, nil
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// New builds a catalog from entries already in memory. Entries with an empty
// name or artist are dropped like they would be by Load.
func New(entries []Entry, categories ...string) *Catalog {
	c := &Catalog{
		features:   make(map[Feature]bool),
		categories: make(map[string]bool, len(categories)),
	}
	for _, col := range categories {
		c.categories[col] = true
	}
	for _, e := range entries {
		if strings.TrimSpace(e.Name) == "" || strings.TrimSpace(e.Artist) == "" {
			c.dropped++
			continue
		}
		c.entries = append(c.entries, e)
	}
	for _, f := range KnownFeatures {
		complete := true
		for _, e := range c.entries {
			if _, ok := e.Features[f]; !ok {
				complete = false
				break
			}
		}
		if complete {
			c.features[f] = true
		}
	}
	return c
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

func (c *Catalog) Entry(i int) Entry {
	return c.entries[i]
}

// Entries returns the backing slice. Callers must not modify it.
func (c *Catalog) Entries() []Entry {
	return c.entries
}

// HasFeature reports whether f can be used to build vectors.
func (c *Catalog) HasFeature(f Feature) bool {
	return c.features[f]
}

func (c *Catalog) HasCategory(column string) bool {
	return c.categories[column]
}

// Dropped is the number of rows rejected at load.
func (c *Catalog) Dropped() int {
	return c.dropped
}
