// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/fermano/TennisPulse/internal/aggregate"
	"github.com/fermano/TennisPulse/internal/domain/window"
)

// HighlightsDependencies defines the interface for the highlights dashboard.
type HighlightsDependencies interface {
	Highlights(ctx context.Context, w window.Window) (aggregate.Dashboard, error)
}

// HighlightsHandler handles highlights dashboard requests.
type HighlightsHandler struct {
	deps HighlightsDependencies
}

// NewHighlightsHandler creates a new highlights handler.
func NewHighlightsHandler(deps HighlightsDependencies) *HighlightsHandler {
	return &HighlightsHandler{deps: deps}
}

// HandleHighlights handles GET /highlights?window= requests.
func (h *HighlightsHandler) HandleHighlights(w http.ResponseWriter, r *http.Request) {
	const op = "api.highlights"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	win, err := parseWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	dash, err := h.deps.Highlights(r.Context(), win)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, dash)
}
