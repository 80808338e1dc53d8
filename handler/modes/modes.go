package modes

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/mager/cochlea/features"
	"github.com/mager/cochlea/matcher"
	"github.com/mager/cochlea/recommend"
)

// ModesHandler lists the recommendation modes the service was built with.
type ModesHandler struct {
	log      *zap.SugaredLogger
	registry *recommend.Registry
}

func (*ModesHandler) Pattern() string {
	return "/modes"
}

func (*ModesHandler) Methods() []string {
	return []string{http.MethodGet}
}

func NewModesHandler(log *zap.SugaredLogger, registry *recommend.Registry) *ModesHandler {
	return &ModesHandler{log: log, registry: registry}
}

type Mode struct {
	features.Config
	Default    bool              `json:"default"`
	K          int               `json:"k"`
	Match      matcher.Mode      `json:"match"`
	Columns    []string          `json:"columns"`
	Categories []string          `json:"categories"`
	Scalers    []features.Scaler `json:"scalers"`
}

type ModesResponse struct {
	Modes []Mode `json:"modes"`
}

// List recommendation modes
// @Summary List recommendation modes
// @Description List the feature sets recommendations can be computed with
// @Tags Recommend
// @Produce json
// @Success 200 {object} ModesResponse
// @Router /modes [get]
func (h *ModesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := ModesResponse{Modes: []Mode{}}
	def := h.registry.Default().Mode()

	for _, name := range h.registry.Modes() {
		e, err := h.registry.Engine(name)
		if err != nil {
			continue
		}
		resp.Modes = append(resp.Modes, Mode{
			Config:     e.Config(),
			Default:    name == def,
			K:          e.K(),
			Match:      e.MatchMode(),
			Columns:    e.Matrix().Columns(),
			Categories: e.Matrix().Categories(),
			Scalers:    e.Matrix().Scalers(),
		})
	}

	json.NewEncoder(w).Encode(resp)
}
