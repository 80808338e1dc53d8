package history

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/mager/cochlea/cochlea"
	"github.com/mager/cochlea/history"
)

// HistoryHandler returns the most recently recommended tracks.
type HistoryHandler struct {
	log      *zap.SugaredLogger
	recorder *history.Recorder
}

func (*HistoryHandler) Pattern() string {
	return "/history"
}

func (*HistoryHandler) Methods() []string {
	return []string{http.MethodGet}
}

func NewHistoryHandler(log *zap.SugaredLogger, recorder *history.Recorder) *HistoryHandler {
	return &HistoryHandler{log: log, recorder: recorder}
}

type HistoryResponse struct {
	Tracks []cochlea.Pair `json:"tracks"`
}

// Recent recommendations
// @Summary Recent recommendations
// @Description The latest recommended tracks, oldest first
// @Tags History
// @Produce json
// @Success 200 {object} HistoryResponse
// @Router /history [get]
func (h *HistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(HistoryResponse{Tracks: h.recorder.Recent()})
}
