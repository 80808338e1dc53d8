package recommend

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mager/cochlea/cochlea"
	"github.com/mager/cochlea/history"
	"github.com/mager/cochlea/linker"
	"github.com/mager/cochlea/matcher"
	"github.com/mager/cochlea/metrics"
	rec "github.com/mager/cochlea/recommend"
)

const missingInput = "Please enter both the song name and the artist name."

// RecommendHandler is an http.Handler that answers one recommendation request.
type RecommendHandler struct {
	log      *zap.SugaredLogger
	registry *rec.Registry
	enricher *linker.Enricher
	recorder *history.Recorder
}

func (*RecommendHandler) Pattern() string {
	return "/recommend"
}

func (*RecommendHandler) Methods() []string {
	return []string{http.MethodPost}
}

// NewRecommendHandler builds a new RecommendHandler.
func NewRecommendHandler(
	log *zap.SugaredLogger,
	registry *rec.Registry,
	enricher *linker.Enricher,
	recorder *history.Recorder,
) *RecommendHandler {
	return &RecommendHandler{
		log:      log,
		registry: registry,
		enricher: enricher,
		recorder: recorder,
	}
}

type RecommendRequest struct {
	Song   string `json:"song"`
	Artist string `json:"artist"`
	// Mode selects the feature set; empty uses the default mode.
	Mode string `json:"mode"`
	// Links asks for external links on every recommended track.
	Links bool `json:"links"`
}

type Track struct {
	cochlea.Track
	Display string `json:"display"`
}

type RecommendResponse struct {
	Mode    string  `json:"mode"`
	Match   *Track  `json:"match,omitempty"`
	Tracks  []Track `json:"tracks"`
	Message string  `json:"message,omitempty"`
}

func toTrack(t cochlea.Track) Track {
	return Track{Track: t, Display: t.Display()}
}

// Recommend similar tracks
// @Summary Recommend similar tracks
// @Description Resolve a song and artist in the catalog and return its nearest neighbors
// @Tags Recommend
// @Accept json
// @Produce json
// @Param request body RecommendRequest true "Song and artist"
// @Success 200 {object} RecommendResponse
// @Router /recommend [post]
func (h *RecommendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		metrics.RequestDuration.WithLabelValues(h.Pattern()).Observe(time.Since(start).Seconds())
	}()

	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Song) == "" || strings.TrimSpace(req.Artist) == "" {
		http.Error(w, missingInput, http.StatusBadRequest)
		return
	}

	engine, err := h.registry.Engine(req.Mode)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	mode := engine.Mode()
	l := h.log.With("mode", mode, "song", req.Song, "artist", req.Artist)

	resp := RecommendResponse{Mode: mode, Tracks: []Track{}}

	res, err := engine.Recommend(req.Song, req.Artist)
	if errors.Is(err, matcher.ErrNoMatch) {
		l.Infow("No match")
		metrics.Recommendations.WithLabelValues(mode, "no_match").Inc()
		resp.Message = err.Error()
		json.NewEncoder(w).Encode(resp)
		return
	}
	if err != nil {
		l.Errorw("Recommendation failed", "error", err)
		metrics.Recommendations.WithLabelValues(mode, "error").Inc()
		http.Error(w, "recommendation error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	tracks := res.Tracks
	if req.Links {
		tracks = h.enricher.Enrich(r.Context(), tracks)
	}

	if err := h.recorder.Record(r.Context(), cochlea.Pairs(tracks)); err != nil {
		l.Warnw("Failed to save history", "error", err)
	}

	match := toTrack(res.Match)
	resp.Match = &match
	for _, t := range tracks {
		resp.Tracks = append(resp.Tracks, toTrack(t))
	}

	l.Infow("Recommended", "match", res.Match.Display(), "count", len(tracks))
	metrics.Recommendations.WithLabelValues(mode, "ok").Inc()
	json.NewEncoder(w).Encode(resp)
}
