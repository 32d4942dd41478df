// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/fermano/TennisPulse/internal/aggregate"
	"github.com/fermano/TennisPulse/internal/domain/window"
)

// RankingDependencies defines the interface for ranking queries.
type RankingDependencies interface {
	TopWins(ctx context.Context, w window.Window, limit int) ([]aggregate.WinsEntry, error)
	TopPerformance(ctx context.Context, w window.Window, limit int) ([]aggregate.PerformanceEntry, error)
}

// RankingsHandler handles ranking requests.
type RankingsHandler struct {
	deps     RankingDependencies
	maxLimit int
}

// NewRankingsHandler creates a new rankings handler.
func NewRankingsHandler(deps RankingDependencies, maxLimit int) *RankingsHandler {
	return &RankingsHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleWins handles GET /rankings/wins?window=&limit= requests.
func (h *RankingsHandler) HandleWins(w http.ResponseWriter, r *http.Request) {
	const op = "api.rankings_wins"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	win, err := parseWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	limit, err := parseLimit(r, h.maxLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	entries, err := h.deps.TopWins(r.Context(), win, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// HandlePerformance handles GET /rankings/performance?window=&limit= requests.
func (h *RankingsHandler) HandlePerformance(w http.ResponseWriter, r *http.Request) {
	const op = "api.rankings_performance"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	win, err := parseWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	limit, err := parseLimit(r, h.maxLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	entries, err := h.deps.TopPerformance(r.Context(), win, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
