package features

import (
	"fmt"

	"github.com/mager/cochlea/catalog"
)

const (
	ModeTempo = "tempo"
	ModeMood  = "mood"
	ModeDance = "dance"
)

// MoodLimit is how many tracks the mood mode recommends.
const MoodLimit = 5

var presets = map[string][]catalog.Feature{
	ModeTempo: {catalog.Speechiness, catalog.Tempo},
	ModeMood:  {catalog.Energy, catalog.Valence},
	ModeDance: {catalog.Danceability, catalog.Energy, catalog.Tempo},
}

var limits = map[string]int{
	ModeMood: MoodLimit,
}

// Lookup returns the preset for mode, one-hot encoding category.
func Lookup(mode, category string) (Config, error) {
	numeric, ok := presets[mode]
	if !ok {
		return Config{}, &ConfigurationError{Mode: mode, Reason: "unknown mode"}
	}
	return Config{
		Name:     mode,
		Numeric:  append([]catalog.Feature(nil), numeric...),
		Category: category,
		Limit:    limits[mode],
	}, nil
}

// Presets resolves every mode name, failing on the first unknown one.
func Presets(modes []string, category string) ([]Config, error) {
	out := make([]Config, 0, len(modes))
	for _, m := range modes {
		cfg, err := Lookup(m, category)
		if err != nil {
			return nil, fmt.Errorf("resolving modes: %w", err)
		}
		out = append(out, cfg)
	}
	return out, nil
}

// Required returns the union of numeric features the configs need, in first-seen order.
func Required(cfgs []Config) []catalog.Feature {
	seen := make(map[catalog.Feature]bool)
	var out []catalog.Feature
	for _, c := range cfgs {
		for _, f := range c.Numeric {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out
}
