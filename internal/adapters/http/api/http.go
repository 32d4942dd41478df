// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/fermano/TennisPulse/internal/adapters/registry"
	"github.com/fermano/TennisPulse/internal/aggregate"
	"github.com/fermano/TennisPulse/internal/domain/model"
	"github.com/fermano/TennisPulse/internal/domain/window"
)

// defaultLimit applies when the ranking endpoints get no ?limit.
const defaultLimit = 10

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Enqueue pushes an event for async processing. Returns false on backpressure.
	Enqueue(ctx context.Context, event model.MatchCompletedEvent) bool

	// Read operations over the analytics store.
	TopWins(ctx context.Context, w window.Window, limit int) ([]aggregate.WinsEntry, error)
	TopPerformance(ctx context.Context, w window.Window, limit int) ([]aggregate.PerformanceEntry, error)
	Highlights(ctx context.Context, w window.Window) (aggregate.Dashboard, error)
	Timeline(ctx context.Context, playerID string, w window.Window) (aggregate.Timeline, error)

	// Registry exposes the club/player/match registry.
	Registry() *registry.Registry
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	eventsHandler     *EventsHandler
	rankingsHandler   *RankingsHandler
	highlightsHandler *HighlightsHandler
	timelineHandler   *TimelineHandler
	registryHandler   *RegistryHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		eventsHandler:     NewEventsHandler(deps),
		rankingsHandler:   NewRankingsHandler(deps, maxLimit),
		highlightsHandler: NewHighlightsHandler(deps),
		timelineHandler:   NewTimelineHandler(deps),
		registryHandler:   NewRegistryHandler(deps.Registry()),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/events", MetricsMiddleware(s.eventsHandler.HandlePostEvent, "events"))
	mux.HandleFunc("/rankings/wins", MetricsMiddleware(s.rankingsHandler.HandleWins, "rankings_wins"))
	mux.HandleFunc("/rankings/performance", MetricsMiddleware(s.rankingsHandler.HandlePerformance, "rankings_performance"))
	mux.HandleFunc("/highlights", MetricsMiddleware(s.highlightsHandler.HandleHighlights, "highlights"))
	mux.HandleFunc("/players/", MetricsMiddleware(s.routePlayers, "players"))
	mux.HandleFunc("/players", MetricsMiddleware(s.registryHandler.HandlePlayers, "players"))
	mux.HandleFunc("/clubs/", MetricsMiddleware(s.registryHandler.HandleClubByID, "clubs"))
	mux.HandleFunc("/clubs", MetricsMiddleware(s.registryHandler.HandleClubs, "clubs"))
	mux.HandleFunc("/matches/", MetricsMiddleware(s.registryHandler.HandleMatchByID, "matches"))
	mux.HandleFunc("/matches", MetricsMiddleware(s.registryHandler.HandleMatches, "matches"))
}

// routePlayers dispatches /players/{id}[/timeline] between the timeline
// handler and the registry CRUD handler.
func (s *Server) routePlayers(w http.ResponseWriter, r *http.Request) {
	if _, ok := timelinePlayerID(r.URL.Path); ok {
		s.timelineHandler.HandleTimeline(w, r)
		return
	}
	s.registryHandler.HandlePlayerByID(w, r)
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

// parseWindow reads ?window=, defaulting to ALL_TIME.
func parseWindow(r *http.Request) (window.Window, error) {
	return window.Parse(r.URL.Query().Get("window"))
}

// parseLimit reads ?limit=, applying the default and the configured cap.
func parseLimit(r *http.Request, maxLimit int) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, ErrBadRequest
	}
	if n > maxLimit {
		return 0, ErrBadRequest
	}
	return n, nil
}
