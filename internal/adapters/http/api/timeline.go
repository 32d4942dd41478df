// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/fermano/TennisPulse/internal/aggregate"
	"github.com/fermano/TennisPulse/internal/domain/window"
)

// TimelineDependencies defines the interface for timeline queries.
type TimelineDependencies interface {
	Timeline(ctx context.Context, playerID string, w window.Window) (aggregate.Timeline, error)
}

// TimelineHandler handles per-player metric timeline requests.
type TimelineHandler struct {
	deps TimelineDependencies
}

// NewTimelineHandler creates a new timeline handler.
func NewTimelineHandler(deps TimelineDependencies) *TimelineHandler {
	return &TimelineHandler{deps: deps}
}

// timelinePlayerID extracts the player id from /players/{id}/timeline.
func timelinePlayerID(path string) (string, bool) {
	rest, ok := strings.CutPrefix(path, "/players/")
	if !ok {
		return "", false
	}
	id, ok := strings.CutSuffix(rest, "/timeline")
	if !ok || id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

// HandleTimeline handles GET /players/{id}/timeline?window= requests.
func (h *TimelineHandler) HandleTimeline(w http.ResponseWriter, r *http.Request) {
	const op = "api.timeline"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	playerID, ok := timelinePlayerID(r.URL.Path)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	win, err := parseWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	timeline, err := h.deps.Timeline(r.Context(), playerID, win)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, timeline)
}
