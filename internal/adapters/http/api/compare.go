package api

import (
	"context"
	"net/http"

	"github.com/okian/herodex/internal/domain/compare"
	"github.com/okian/herodex/pkg/logger"
)

// CompareDependencies defines the comparison operation.
type CompareDependencies interface {
	Compare(ctx context.Context, id1, id2 string) (compare.Result, error)
}

// CompareHandler serves hero comparisons.
type CompareHandler struct {
	deps   CompareDependencies
	logger logger.Logger
}

// NewCompareHandler creates a new compare handler.
func NewCompareHandler(deps CompareDependencies, l logger.Logger) *CompareHandler {
	return &CompareHandler{deps: deps, logger: l}
}

// categoryResponse is one row of the comparison table.
type categoryResponse struct {
	Name     string `json:"name"`
	Winner   any    `json:"winner"`
	ID1Value int    `json:"id1_value"`
	ID2Value int    `json:"id2_value"`
}

// compareResponse mirrors the OpenAPI schema for GET /api/heroes/compare.
type compareResponse struct {
	ID1           int                `json:"id1"`
	ID2           int                `json:"id2"`
	Categories    []categoryResponse `json:"categories"`
	OverallWinner any                `json:"overall_winner"`
}

// renderWinner encodes a winner as 1, 2 or "tie". Existing clients depend on
// this mixed vocabulary.
func renderWinner(w compare.Winner) any {
	switch w {
	case compare.First:
		return 1
	case compare.Second:
		return 2
	default:
		return "tie"
	}
}

func newCompareResponse(res compare.Result) compareResponse {
	out := compareResponse{
		ID1:           int(res.ID1),
		ID2:           int(res.ID2),
		Categories:    make([]categoryResponse, len(res.Categories)),
		OverallWinner: renderWinner(res.Overall),
	}
	for i, c := range res.Categories {
		out.Categories[i] = categoryResponse{
			Name:     string(c.Category),
			Winner:   renderWinner(c.Winner),
			ID1Value: c.Value1,
			ID2Value: c.Value2,
		}
	}
	return out
}

// HandleCompare handles GET /api/heroes/compare?id1=&id2=.
func (h *CompareHandler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	const op = "api.compare_heroes"
	q := r.URL.Query()
	res, err := h.deps.Compare(r.Context(), q.Get("id1"), q.Get("id2"))
	if err != nil {
		writeFailure(r.Context(), w, h.logger, op, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, newCompareResponse(res))
}
