// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/fermano/TennisPulse/internal/domain/model"
)

// EventDependencies defines the interface for event ingestion.
type EventDependencies interface {
	Enqueue(ctx context.Context, event model.MatchCompletedEvent) bool
}

// EventsHandler handles event ingestion requests.
type EventsHandler struct {
	deps EventDependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps EventDependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

type ackResponse struct {
	Status string `json:"status"`
}

func validateEvent(e model.MatchCompletedEvent) error {
	if strings.TrimSpace(e.MatchID) == "" {
		return errors.New("missing matchId")
	}
	for i, stats := range e.PlayerStats {
		if strings.TrimSpace(stats.PlayerID) == "" {
			return errors.New("missing playerId in playerStats[" + strconv.Itoa(i) + "]")
		}
	}
	return nil
}

// HandlePostEvent handles POST /events requests. Duplicate deliveries are
// accepted; the keyed upsert downstream makes processing idempotent.
func (h *EventsHandler) HandlePostEvent(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_event"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var event model.MatchCompletedEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validateEvent(event); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	if ok := h.deps.Enqueue(r.Context(), event); !ok {
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted"})
}
