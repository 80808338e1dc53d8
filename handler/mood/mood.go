package mood

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/mager/cochlea/cochlea"
	"github.com/mager/cochlea/features"
	"github.com/mager/cochlea/recommend"
)

const (
	defaultCount = 5
	maxCount     = 50
)

// MoodHandler lists the happiest and saddest tracks in the catalog.
type MoodHandler struct {
	log      *zap.SugaredLogger
	registry *recommend.Registry
}

func (*MoodHandler) Pattern() string {
	return "/mood"
}

func (*MoodHandler) Methods() []string {
	return []string{http.MethodGet}
}

func NewMoodHandler(log *zap.SugaredLogger, registry *recommend.Registry) *MoodHandler {
	return &MoodHandler{log: log, registry: registry}
}

type MoodResponse struct {
	Happy []cochlea.Track `json:"happy"`
	Sad   []cochlea.Track `json:"sad"`
}

// Happiest and saddest tracks
// @Summary Happiest and saddest tracks
// @Description Top tracks by standardized valence and energy
// @Tags Recommend
// @Produce json
// @Param n query int false "Tracks per list (default 5)"
// @Success 200 {object} MoodResponse
// @Router /mood [get]
func (h *MoodHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n := defaultCount
	if s := r.URL.Query().Get("n"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 || v > maxCount {
			http.Error(w, "n must be between 1 and 50", http.StatusBadRequest)
			return
		}
		n = v
	}

	e, err := h.registry.Engine(features.ModeMood)
	if err != nil {
		http.Error(w, "mood mode is not enabled", http.StatusNotFound)
		return
	}

	happy, sad, err := e.MoodExtremes(n)
	if errors.Is(err, features.ErrConfiguration) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Errorw("Mood extremes failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(MoodResponse{Happy: happy, Sad: sad})
}
