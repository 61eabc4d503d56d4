// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/herodex/internal/domain/compare"
	"github.com/okian/herodex/internal/domain/hero"
	"github.com/okian/herodex/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	HeroDependencies
	CompareDependencies
	HealthDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	heroesHandler  *HeroesHandler
	compareHandler *CompareHandler
	logger         logger.Logger
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the logger used by handlers and middleware.
func WithLogger(l logger.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	s := &Server{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.healthHandler = NewHealthHandler(deps)
	s.statsHandler = NewStatsHandler(statsProvider)
	s.heroesHandler = NewHeroesHandler(deps, s.logger)
	s.compareHandler = NewCompareHandler(deps, s.logger)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	wrap := func(h http.HandlerFunc, endpoint string) http.Handler {
		return RequestIDMiddleware(MetricsMiddleware(h, endpoint))
	}

	mux.Handle("GET /healthz", wrap(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("GET /metrics", s.healthHandler.MetricsHandler())
	mux.Handle("GET /stats", wrap(s.statsHandler.HandleStats, "stats"))
	mux.Handle("GET /api/heroes", wrap(s.heroesHandler.HandleList, "heroes"))
	mux.Handle("GET /api/heroes/compare", wrap(s.compareHandler.HandleCompare, "compare"))
	mux.Handle("GET /api/heroes/{id}", wrap(s.heroesHandler.HandleGet, "hero"))
	mux.Handle("GET /api/heroes/{id}/powerstats", wrap(s.heroesHandler.HandlePowerstats, "powerstats"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure maps a domain error to a status code and a public message.
// Only the sentinel text is exposed; wrapped causes stay in the logs.
func writeFailure(ctx context.Context, w http.ResponseWriter, log logger.Logger, op string, err error) {
	switch {
	case errors.Is(err, compare.ErrValidation):
		writeError(w, http.StatusBadRequest, "bad_request", compare.ErrValidation)
	case errors.Is(err, hero.ErrInvalidID), errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad_request", hero.ErrInvalidID)
	case errors.Is(err, hero.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", hero.ErrNotFound)
	case errors.Is(err, hero.ErrUnavailable):
		log.Error(ctx, "catalog unavailable",
			logger.String("op", op), logger.String("request_id", RequestID(ctx)), logger.Error(err))
		writeError(w, http.StatusServiceUnavailable, "unavailable", hero.ErrUnavailable)
	default:
		log.Error(ctx, "request failed",
			logger.String("op", op), logger.String("request_id", RequestID(ctx)), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", ErrInternal)
	}
}
