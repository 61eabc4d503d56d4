package api

import (
	"context"
	"net/http"

	"github.com/okian/herodex/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthDependencies reports catalog size for health checks.
type HealthDependencies interface {
	Count(ctx context.Context) (int, error)
}

// HealthHandler handles health and metrics requests.
type HealthHandler struct {
	deps HealthDependencies
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps HealthDependencies) *HealthHandler {
	return &HealthHandler{deps: deps}
}

type healthResponse struct {
	Status string `json:"status"`
	Heroes int    `json:"heroes"`
}

// HandleHealth handles GET /healthz. It answers 503 when the catalog cannot be read.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	n, err := h.deps.Count(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Heroes: n})
}

// MetricsHandler serves the service registry in Prometheus exposition format.
func (h *HealthHandler) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})
}
