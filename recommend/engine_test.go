package recommend

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mager/cochlea/catalog"
	"github.com/mager/cochlea/cochlea"
	"github.com/mager/cochlea/config"
	"github.com/mager/cochlea/features"
	"github.com/mager/cochlea/index"
	"github.com/mager/cochlea/logger"
	"github.com/mager/cochlea/matcher"
)

func song(name, artist, genre string, tempo, speech float64) catalog.Entry {
	return catalog.Entry{
		Name:       name,
		Artist:     artist,
		Categories: map[string]string{catalog.ColumnSubgenre: genre},
		Features: map[catalog.Feature]float64{
			catalog.Tempo:       tempo,
			catalog.Speechiness: speech,
		},
	}
}

func tempoConfig() features.Config {
	cfg, _ := features.Lookup(features.ModeTempo, catalog.ColumnSubgenre)
	return cfg
}

func TestRecommendScenario(t *testing.T) {
	cat := catalog.New([]catalog.Entry{
		song("Shape of You", "Ed Sheeran", "Pop", 95, 0.08),
		song("Perfect", "Ed Sheeran", "Pop", 95, 0.03),
		song("Bad Guy", "Billie Eilish", "Electropop", 135, 0.37),
	}, catalog.ColumnSubgenre)

	e, err := NewEngine(cat, tempoConfig(), Settings{})
	require.NoError(t, err)

	res, err := e.Recommend("shape", "sheeran")
	require.NoError(t, err)

	assert.Equal(t, features.ModeTempo, res.Mode)
	assert.Equal(t, "Shape of You", res.Match.Name)
	assert.Equal(t, "Pop", res.Match.Genre)
	require.Len(t, res.Tracks, 2)
	assert.Equal(t, "Perfect", res.Tracks[0].Name)
	assert.Equal(t, "Bad Guy", res.Tracks[1].Name)
	assert.Less(t, res.Tracks[0].Distance, res.Tracks[1].Distance)
	for _, tr := range res.Tracks {
		assert.NotEqual(t, "Shape of You", tr.Name)
	}
}

func TestRecommendNoMatch(t *testing.T) {
	cat := catalog.New([]catalog.Entry{
		song("Shape of You", "Ed Sheeran", "Pop", 95, 0.08),
	}, catalog.ColumnSubgenre)

	e, err := NewEngine(cat, tempoConfig(), Settings{})
	require.NoError(t, err)

	res, err := e.Recommend("zzz_nonexistent", "nobody")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, matcher.ErrNoMatch)
}

func TestRecommendDeduplicates(t *testing.T) {
	cat := catalog.New([]catalog.Entry{
		song("Shape of You", "Ed Sheeran", "Pop", 95, 0.08),
		song("Shape of You", "Ed Sheeran", "Pop", 95, 0.08),
		song("Perfect", "Ed Sheeran", "Pop", 96, 0.08),
		song("Perfect", "Ed Sheeran", "Pop", 96, 0.08),
		song("Shape of You", "Cover Band", "Pop", 97, 0.08),
		song("Bad Guy", "Billie Eilish", "Electropop", 135, 0.37),
	}, catalog.ColumnSubgenre)

	e, err := NewEngine(cat, tempoConfig(), Settings{})
	require.NoError(t, err)

	res, err := e.Recommend("shape", "sheeran")
	require.NoError(t, err)

	// Identity is the (name, artist) pair: other listings of the matched
	// pair are dropped, a same-named song by another artist is kept.
	assert.Equal(t, []cochlea.Pair{
		{Name: "Perfect", Artist: "Ed Sheeran"},
		{Name: "Shape of You", Artist: "Cover Band"},
		{Name: "Bad Guy", Artist: "Billie Eilish"},
	}, cochlea.Pairs(res.Tracks))
}

func TestRecommendLimit(t *testing.T) {
	var entries []catalog.Entry
	for i := 0; i < 12; i++ {
		entries = append(entries, song(string(rune('A'+i)), "Artist", "Pop", float64(100+i), 0.1))
	}
	cat := catalog.New(entries, catalog.ColumnSubgenre)

	e, err := NewEngine(cat, tempoConfig(), Settings{})
	require.NoError(t, err)
	assert.Equal(t, index.DefaultK, e.K())

	res, err := e.Recommend("A", "artist")
	require.NoError(t, err)
	assert.Len(t, res.Tracks, index.DefaultK-1)

	capped, err := NewEngine(cat, tempoConfig(), Settings{Limit: 5})
	require.NoError(t, err)
	res, err = capped.Recommend("A", "artist")
	require.NoError(t, err)
	assert.Len(t, res.Tracks, 5)
	assert.Equal(t, "B", res.Tracks[0].Name)
}

func TestAssemble(t *testing.T) {
	entries := []catalog.Entry{
		{Name: "Q", Artist: "X"},
		{Name: "A", Artist: "Y"},
		{Name: "Q", Artist: "X"},
		{Name: "A", Artist: "Y"},
		{Name: "B", Artist: "Z"},
	}
	neighbors := []index.Neighbor{
		{Row: 2, Distance: 0},
		{Row: 0, Distance: 0},
		{Row: 3, Distance: 1},
		{Row: 1, Distance: 1},
		{Row: 4, Distance: 2},
	}

	got := Assemble(entries, 0, neighbors, "", 0)
	assert.Equal(t, []cochlea.Pair{{Name: "A", Artist: "Y"}, {Name: "B", Artist: "Z"}}, cochlea.Pairs(got))
	assert.Equal(t, 1.0, got[0].Distance)

	assert.Len(t, Assemble(entries, 0, neighbors, "", 1), 1)
	assert.Empty(t, Assemble(entries, 0, neighbors[:2], "", 0))
}

func moodCatalog() *catalog.Catalog {
	valence := []float64{0, 1, 2, 3, 4}
	energy := []float64{0, 1, 2, 4, 3}
	var entries []catalog.Entry
	for i := range valence {
		entries = append(entries, catalog.Entry{
			Name:       string(rune('a' + i)),
			Artist:     "x",
			Categories: map[string]string{catalog.ColumnSubgenre: "pop"},
			Features: map[catalog.Feature]float64{
				catalog.Valence: valence[i],
				catalog.Energy:  energy[i],
			},
		})
	}
	return catalog.New(entries, catalog.ColumnSubgenre)
}

func TestMoodExtremes(t *testing.T) {
	cfg, err := features.Lookup(features.ModeMood, catalog.ColumnSubgenre)
	require.NoError(t, err)
	e, err := NewEngine(moodCatalog(), cfg, Settings{})
	require.NoError(t, err)

	happy, sad, err := e.MoodExtremes(2)
	require.NoError(t, err)

	names := func(ts []cochlea.Track) []string {
		var out []string
		for _, t := range ts {
			out = append(out, t.Name)
		}
		return out
	}
	assert.Equal(t, []string{"e", "d"}, names(happy))
	assert.Equal(t, []string{"a", "b"}, names(sad))

	_, sad, err = e.MoodExtremes(10)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, names(sad))

	for _, n := range []int{0, -1} {
		happy, sad, err = e.MoodExtremes(n)
		require.NoError(t, err)
		assert.Empty(t, happy)
		assert.Empty(t, sad)
	}
}

func TestMoodExtremesNeedsMoodFeatures(t *testing.T) {
	cat := catalog.New([]catalog.Entry{song("a", "x", "pop", 1, 1), song("b", "x", "pop", 2, 2)}, catalog.ColumnSubgenre)
	e, err := NewEngine(cat, tempoConfig(), Settings{})
	require.NoError(t, err)

	_, _, err = e.MoodExtremes(5)
	assert.ErrorIs(t, err, features.ErrConfiguration)
}

func TestRegistry(t *testing.T) {
	cat := catalog.New([]catalog.Entry{
		{
			Name: "a", Artist: "x",
			Categories: map[string]string{catalog.ColumnSubgenre: "pop"},
			Features: map[catalog.Feature]float64{
				catalog.Tempo: 1, catalog.Speechiness: 1, catalog.Energy: 1, catalog.Valence: 1,
			},
		},
	}, catalog.ColumnSubgenre)
	cfgs, err := features.Presets([]string{features.ModeTempo, features.ModeMood}, catalog.ColumnSubgenre)
	require.NoError(t, err)

	r, err := NewRegistry(cat, cfgs, Settings{})
	require.NoError(t, err)
	assert.Equal(t, []string{"tempo", "mood"}, r.Modes())
	assert.Equal(t, "tempo", r.Default().Mode())

	e, err := r.Engine("")
	require.NoError(t, err)
	assert.Equal(t, "tempo", e.Mode())

	require.NoError(t, r.SetDefault("mood"))
	assert.Equal(t, "mood", r.Default().Mode())

	_, err = r.Engine("jazz")
	assert.ErrorIs(t, err, ErrUnknownMode)
	assert.ErrorIs(t, r.SetDefault("jazz"), ErrUnknownMode)

	_, err = NewRegistry(cat, append(cfgs, cfgs[0]), Settings{})
	assert.Error(t, err)
	_, err = NewRegistry(cat, nil, Settings{})
	assert.Error(t, err)
}

func TestRegistryConfigurationError(t *testing.T) {
	cat := catalog.New([]catalog.Entry{song("a", "x", "pop", 1, 1)}, catalog.ColumnSubgenre)
	cfgs, err := features.Presets([]string{features.ModeMood}, catalog.ColumnSubgenre)
	require.NoError(t, err)

	_, err = NewRegistry(cat, cfgs, Settings{})
	assert.ErrorIs(t, err, features.ErrConfiguration)
}

const providedCSV = `track_name,track_artist,playlist_subgenre,speechiness,tempo,energy,valence,danceability
Shape of You,Ed Sheeran,dance pop,0.08,95.9,0.65,0.93,0.82
Perfect,Ed Sheeran,dance pop,0.02,95.0,0.44,0.16,0.59
Bad Guy,Billie Eilish,electropop,0.37,135.1,0.42,0.56,0.70
`

func TestProvideRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "songs.csv")
	require.NoError(t, os.WriteFile(path, []byte(providedCSV), 0o644))
	log, logs := logger.NewTestLogger()

	reg, err := ProvideRegistry(config.Config{
		CatalogPath:    path,
		CategoryColumn: catalog.ColumnSubgenre,
		Modes:          []string{"tempo", "mood", "dance"},
		DefaultMode:    "mood",
		Neighbors:      10,
	}, log)
	require.NoError(t, err)

	assert.Equal(t, "mood", reg.Default().Mode())
	assert.Equal(t, 3, reg.Default().K())
	assert.Equal(t, 1, logs.FilterMessage("Loaded catalog").Len())
	assert.Equal(t, 3, logs.FilterMessage("Built recommendation mode").Len())
}

func TestProvideRegistryErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "songs.csv")
	require.NoError(t, os.WriteFile(path, []byte(providedCSV), 0o644))
	log, _ := logger.NewTestLogger()

	base := config.Config{CatalogPath: path, CategoryColumn: catalog.ColumnSubgenre, Modes: []string{"tempo"}}

	bad := base
	bad.Modes = []string{"jazz"}
	_, err := ProvideRegistry(bad, log)
	assert.ErrorIs(t, err, features.ErrConfiguration)

	bad = base
	bad.CatalogPath = filepath.Join(t.TempDir(), "missing.csv")
	_, err = ProvideRegistry(bad, log)
	assert.Error(t, err)

	bad = base
	bad.MatchMode = "regex"
	_, err = ProvideRegistry(bad, log)
	assert.Error(t, err)

	bad = base
	bad.DefaultMode = "mood"
	_, err = ProvideRegistry(bad, log)
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestProvideRegistryMoodLimit(t *testing.T) {
	var b strings.Builder
	b.WriteString("track_name,track_artist,playlist_subgenre,energy,valence\n")
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&b, "s%d,a,pop,%.2f,%.2f\n", i, float64(i)/20, float64(20-i)/20)
	}
	path := filepath.Join(t.TempDir(), "songs.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	log, _ := logger.NewTestLogger()

	reg, err := ProvideRegistry(config.Config{
		CatalogPath:    path,
		CategoryColumn: catalog.ColumnSubgenre,
		Modes:          []string{"mood"},
		Neighbors:      10,
	}, log)
	require.NoError(t, err)
	assert.Equal(t, "mood", reg.Default().Mode())
	assert.Equal(t, 10, reg.Default().K())

	res, err := reg.Default().Recommend("s5", "a")
	require.NoError(t, err)
	assert.Len(t, res.Tracks, features.MoodLimit)
}

func TestEngineLimitOverridesMode(t *testing.T) {
	cfg, err := features.Lookup(features.ModeMood, catalog.ColumnSubgenre)
	require.NoError(t, err)
	require.Equal(t, features.MoodLimit, cfg.Limit)

	var entries []catalog.Entry
	for i := 0; i < 12; i++ {
		entries = append(entries, catalog.Entry{
			Name:       fmt.Sprintf("s%d", i),
			Artist:     "a",
			Categories: map[string]string{catalog.ColumnSubgenre: "pop"},
			Features:   map[catalog.Feature]float64{catalog.Energy: float64(i), catalog.Valence: float64(i)},
		})
	}
	cat := catalog.New(entries, catalog.ColumnSubgenre)

	e, err := NewEngine(cat, cfg, Settings{Limit: 8})
	require.NoError(t, err)
	res, err := e.Recommend("s0", "a")
	require.NoError(t, err)
	assert.Len(t, res.Tracks, 8)
}
