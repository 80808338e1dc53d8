package mood

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mager/cochlea/catalog"
	"github.com/mager/cochlea/features"
	"github.com/mager/cochlea/logger"
	"github.com/mager/cochlea/recommend"
)

func registry(t *testing.T, modes ...string) *recommend.Registry {
	t.Helper()
	valence := []float64{0, 1, 2, 3, 4}
	energy := []float64{0, 1, 2, 4, 3}
	var entries []catalog.Entry
	for i := range valence {
		entries = append(entries, catalog.Entry{
			Name:       string(rune('a' + i)),
			Artist:     "x",
			Categories: map[string]string{catalog.ColumnSubgenre: "pop"},
			Features: map[catalog.Feature]float64{
				catalog.Valence:     valence[i],
				catalog.Energy:      energy[i],
				catalog.Tempo:       100,
				catalog.Speechiness: 0.1,
			},
		})
	}
	cfgs, err := features.Presets(modes, catalog.ColumnSubgenre)
	require.NoError(t, err)
	reg, err := recommend.NewRegistry(catalog.New(entries, catalog.ColumnSubgenre), cfgs, recommend.Settings{})
	require.NoError(t, err)
	return reg
}

func TestMoodHandler(t *testing.T) {
	log, _ := logger.NewTestLogger()
	h := NewMoodHandler(log, registry(t, features.ModeTempo, features.ModeMood))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/mood?n=1", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp MoodResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Happy, 1)
	require.Len(t, resp.Sad, 1)
	assert.Equal(t, "e", resp.Happy[0].Name)
	assert.Equal(t, "a", resp.Sad[0].Name)
}

func TestMoodHandlerErrors(t *testing.T) {
	log, _ := logger.NewTestLogger()

	tests := []struct {
		name  string
		modes []string
		url   string
		want  int
	}{
		{"bad n", []string{features.ModeMood}, "/mood?n=abc", http.StatusBadRequest},
		{"n too large", []string{features.ModeMood}, "/mood?n=500", http.StatusBadRequest},
		{"mood disabled", []string{features.ModeTempo}, "/mood", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewMoodHandler(log, registry(t, tt.modes...))
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.url, nil))
			assert.Equal(t, tt.want, rr.Code)
		})
	}
}
