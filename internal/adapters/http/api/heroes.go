package api

import (
	"context"
	"net/http"

	"github.com/okian/herodex/internal/domain/hero"
	"github.com/okian/herodex/pkg/logger"
)

// HeroDependencies defines the catalog read operations.
type HeroDependencies interface {
	Heroes(ctx context.Context) ([]hero.Entity, error)
	Hero(ctx context.Context, id hero.ID) (hero.Entity, error)
	Powerstats(ctx context.Context, id hero.ID) (hero.Statline, error)
}

// HeroesHandler serves catalog reads.
type HeroesHandler struct {
	deps   HeroDependencies
	logger logger.Logger
}

// NewHeroesHandler creates a new heroes handler.
func NewHeroesHandler(deps HeroDependencies, l logger.Logger) *HeroesHandler {
	return &HeroesHandler{deps: deps, logger: l}
}

// HandleList handles GET /api/heroes.
func (h *HeroesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_heroes"
	heroes, err := h.deps.Heroes(r.Context())
	if err != nil {
		writeFailure(r.Context(), w, h.logger, op, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, heroes)
}

// HandleGet handles GET /api/heroes/{id}.
func (h *HeroesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_hero"
	id, err := hero.ParseID(r.PathValue("id"))
	if err != nil {
		writeFailure(r.Context(), w, h.logger, op, WrapKind(op, ErrBadRequest, err))
		return
	}
	e, err := h.deps.Hero(r.Context(), id)
	if err != nil {
		writeFailure(r.Context(), w, h.logger, op, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// HandlePowerstats handles GET /api/heroes/{id}/powerstats. The body is the
// statline alone, not wrapped in the hero.
func (h *HeroesHandler) HandlePowerstats(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_powerstats"
	id, err := hero.ParseID(r.PathValue("id"))
	if err != nil {
		writeFailure(r.Context(), w, h.logger, op, WrapKind(op, ErrBadRequest, err))
		return
	}
	stats, err := h.deps.Powerstats(r.Context(), id)
	if err != nil {
		writeFailure(r.Context(), w, h.logger, op, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
