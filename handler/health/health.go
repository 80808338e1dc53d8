package health

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/mager/cochlea/linker"
	"github.com/mager/cochlea/recommend"
)

// HealthHandler reports whether the service is up and what it loaded.
type HealthHandler struct {
	log      *zap.SugaredLogger
	registry *recommend.Registry
	enricher *linker.Enricher
}

func (*HealthHandler) Pattern() string {
	return "/health"
}

func (*HealthHandler) Methods() []string {
	return []string{http.MethodGet}
}

// NewHealthHandler builds a new HealthHandler.
func NewHealthHandler(log *zap.SugaredLogger, registry *recommend.Registry, enricher *linker.Enricher) *HealthHandler {
	return &HealthHandler{
		log:      log,
		registry: registry,
		enricher: enricher,
	}
}

type Response struct {
	Server  bool     `json:"server"`
	Catalog int      `json:"catalog"`
	Modes   []string `json:"modes"`
	Links   []string `json:"links"`
}

// ServeHTTP handles an HTTP request to the /health endpoint.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var resp Response

	h.log.Debug("health check")

	resp.Server = true
	resp.Catalog = h.registry.Default().Size()
	resp.Modes = h.registry.Modes()
	resp.Links = h.enricher.Providers()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
