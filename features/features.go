// Package features turns catalog entries into fixed-length numeric vectors:
// a one-hot encoding of one categorical column followed by standardized
// numeric features.
//
// Row i of a Matrix is always derived from catalog entry i.
package features

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/exp/maps"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/mager/cochlea/catalog"
)

// ErrConfiguration is matched by every *ConfigurationError.
var ErrConfiguration = errors.New("features: invalid configuration")

// ConfigurationError reports a configuration the catalog cannot satisfy.
type ConfigurationError struct {
	Mode    string
	Feature string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	if e.Feature == "" {
		return fmt.Sprintf("features: mode %q: %s", e.Mode, e.Reason)
	}
	return fmt.Sprintf("features: mode %q: %s %q", e.Mode, e.Reason, e.Feature)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// Config selects which columns make up a vector. Name is the mode the
// configuration is served under.
type Config struct {
	Name     string            `json:"name"`
	Numeric  []catalog.Feature `json:"numeric"`
	Category string            `json:"category"`
	// Limit caps how many recommendations the mode returns; 0 is uncapped.
	Limit int `json:"limit,omitempty"`
}

func (c Config) validate(cat *catalog.Catalog) error {
	if len(c.Numeric) == 0 && c.Category == "" {
		return &ConfigurationError{Mode: c.Name, Reason: "no columns selected"}
	}
	seen := make(map[catalog.Feature]bool, len(c.Numeric))
	for _, f := range c.Numeric {
		if seen[f] {
			return &ConfigurationError{Mode: c.Name, Feature: string(f), Reason: "duplicate feature"}
		}
		seen[f] = true
		if !cat.HasFeature(f) {
			return &ConfigurationError{Mode: c.Name, Feature: string(f), Reason: "feature not in catalog"}
		}
	}
	if c.Category != "" && !cat.HasCategory(c.Category) {
		return &ConfigurationError{Mode: c.Name, Feature: c.Category, Reason: "category not in catalog"}
	}
	return nil
}

// Scaler holds the standardization parameters of one numeric column.
type Scaler struct {
	Feature catalog.Feature `json:"feature"`
	Mean    float64         `json:"mean"`
	Std     float64         `json:"std"`
}

// Transform standardizes v. A zero Std yields 0 for every input.
func (s Scaler) Transform(v float64) float64 {
	if s.Std == 0 {
		return 0
	}
	return (v - s.Mean) / s.Std
}

func (s Scaler) Inverse(z float64) float64 {
	return z*s.Std + s.Mean
}

// Matrix is the feature table for one Config. It is read-only once built.
type Matrix struct {
	config     Config
	data       *mat.Dense
	columns    []string
	categories []string
	scalers    []Scaler
	offset     map[catalog.Feature]int
}

// Build fits the scalers over the whole catalog and encodes every entry.
func Build(cat *catalog.Catalog, cfg Config) (*Matrix, error) {
	if err := cfg.validate(cat); err != nil {
		return nil, err
	}
	n := cat.Len()
	if n == 0 {
		return nil, &ConfigurationError{Mode: cfg.Name, Reason: "catalog is empty"}
	}
	entries := cat.Entries()

	var categories []string
	if cfg.Category != "" {
		distinct := make(map[string]struct{})
		for _, e := range entries {
			distinct[e.Category(cfg.Category)] = struct{}{}
		}
		categories = maps.Keys(distinct)
		sort.Strings(categories)
	}
	catIndex := make(map[string]int, len(categories))
	for i, c := range categories {
		catIndex[c] = i
	}

	scalers := make([]Scaler, len(cfg.Numeric))
	col := make([]float64, n)
	for j, f := range cfg.Numeric {
		for i, e := range entries {
			col[i], _ = e.Feature(f)
		}
		mean, std := stat.PopMeanStdDev(col, nil)
		scalers[j] = Scaler{Feature: f, Mean: mean, Std: std}
	}

	dim := len(categories) + len(cfg.Numeric)
	columns := make([]string, 0, dim)
	for _, c := range categories {
		columns = append(columns, cfg.Category+"="+c)
	}
	offset := make(map[catalog.Feature]int, len(cfg.Numeric))
	for j, f := range cfg.Numeric {
		offset[f] = len(categories) + j
		columns = append(columns, string(f))
	}

	data := mat.NewDense(n, dim, nil)
	for i, e := range entries {
		if cfg.Category != "" {
			data.Set(i, catIndex[e.Category(cfg.Category)], 1)
		}
		for j, s := range scalers {
			v, _ := e.Feature(s.Feature)
			data.Set(i, len(categories)+j, s.Transform(v))
		}
	}

	return &Matrix{
		config:     cfg,
		data:       data,
		columns:    columns,
		categories: categories,
		scalers:    scalers,
		offset:     offset,
	}, nil
}

func (m *Matrix) Config() Config {
	return m.config
}

func (m *Matrix) Rows() int {
	r, _ := m.data.Dims()
	return r
}

func (m *Matrix) Dim() int {
	_, c := m.data.Dims()
	return c
}

// Row returns a copy of the vector for catalog row i.
func (m *Matrix) Row(i int) []float64 {
	return mat.Row(nil, i, m.data)
}

// Dense exposes the underlying matrix for the index. Callers must not write to it.
func (m *Matrix) Dense() *mat.Dense {
	return m.data
}

// Columns names each vector position, one-hot columns first.
func (m *Matrix) Columns() []string {
	return m.columns
}

func (m *Matrix) Categories() []string {
	return m.categories
}

func (m *Matrix) Scalers() []Scaler {
	return m.scalers
}

func (m *Matrix) Scaler(f catalog.Feature) (Scaler, bool) {
	for _, s := range m.scalers {
		if s.Feature == f {
			return s, true
		}
	}
	return Scaler{}, false
}

// Value returns the standardized value of f at row i.
func (m *Matrix) Value(i int, f catalog.Feature) (float64, bool) {
	j, ok := m.offset[f]
	if !ok {
		return 0, false
	}
	return m.data.At(i, j), true
}
