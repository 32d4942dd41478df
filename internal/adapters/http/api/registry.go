// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/fermano/TennisPulse/internal/adapters/registry"
	"github.com/fermano/TennisPulse/internal/domain/model"
)

// RegistryHandler exposes the club/player/match registry over HTTP.
type RegistryHandler struct {
	reg *registry.Registry
}

// NewRegistryHandler creates a new registry handler.
func NewRegistryHandler(reg *registry.Registry) *RegistryHandler {
	return &RegistryHandler{reg: reg}
}

// pathID extracts the trailing id from prefix-rooted paths like /clubs/{id}.
func pathID(path, prefix string) (string, bool) {
	id := strings.TrimPrefix(path, prefix)
	if id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

// writeRegistryError translates registry sentinels to HTTP statuses.
func writeRegistryError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, registry.ErrClubNotFound),
		errors.Is(err, registry.ErrPlayerNotFound),
		errors.Is(err, registry.ErrMatchNotFound):
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
	case errors.Is(err, registry.ErrMissingOutcome),
		errors.Is(err, registry.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

// HandleClubs handles POST /clubs and GET /clubs.
func (h *RegistryHandler) HandleClubs(w http.ResponseWriter, r *http.Request) {
	const op = "api.clubs"
	switch r.Method {
	case http.MethodPost:
		var club registry.Club
		if err := json.NewDecoder(r.Body).Decode(&club); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if strings.TrimSpace(club.Name) == "" {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		created, err := h.reg.CreateClub(r.Context(), club)
		if err != nil {
			writeRegistryError(w, op, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	case http.MethodGet:
		clubs, err := h.reg.ListClubs(r.Context())
		if err != nil {
			writeRegistryError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, clubs)
	default:
		http.NotFound(w, r)
	}
}

// HandleClubByID handles GET, PUT and DELETE on /clubs/{id}.
func (h *RegistryHandler) HandleClubByID(w http.ResponseWriter, r *http.Request) {
	const op = "api.club"
	id, ok := pathID(r.URL.Path, "/clubs/")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	switch r.Method {
	case http.MethodGet:
		club, err := h.reg.GetClub(r.Context(), id)
		if err != nil {
			writeRegistryError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, club)
	case http.MethodPut:
		var club registry.Club
		if err := json.NewDecoder(r.Body).Decode(&club); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		club.ID = id
		updated, err := h.reg.UpdateClub(r.Context(), club)
		if err != nil {
			writeRegistryError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := h.reg.DeleteClub(r.Context(), id); err != nil {
			writeRegistryError(w, op, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

// HandlePlayers handles POST /players and GET /players.
func (h *RegistryHandler) HandlePlayers(w http.ResponseWriter, r *http.Request) {
	const op = "api.players"
	switch r.Method {
	case http.MethodPost:
		var player registry.Player
		if err := json.NewDecoder(r.Body).Decode(&player); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if strings.TrimSpace(player.Name) == "" {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		created, err := h.reg.CreatePlayer(r.Context(), player)
		if err != nil {
			writeRegistryError(w, op, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	case http.MethodGet:
		players, err := h.reg.ListPlayers(r.Context())
		if err != nil {
			writeRegistryError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, players)
	default:
		http.NotFound(w, r)
	}
}

// HandlePlayerByID handles GET, PUT and DELETE on /players/{id}.
func (h *RegistryHandler) HandlePlayerByID(w http.ResponseWriter, r *http.Request) {
	const op = "api.player"
	id, ok := pathID(r.URL.Path, "/players/")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	switch r.Method {
	case http.MethodGet:
		player, err := h.reg.GetPlayer(r.Context(), id)
		if err != nil {
			writeRegistryError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, player)
	case http.MethodPut:
		var player registry.Player
		if err := json.NewDecoder(r.Body).Decode(&player); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		player.ID = id
		updated, err := h.reg.UpdatePlayer(r.Context(), player)
		if err != nil {
			writeRegistryError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := h.reg.DeletePlayer(r.Context(), id); err != nil {
			writeRegistryError(w, op, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

// createMatchRequest is the body of POST /matches.
type createMatchRequest struct {
	ClubID    string `json:"clubId"`
	Player1ID string `json:"player1Id"`
	Player2ID string `json:"player2Id"`
}

// updateStatusRequest is the body of PUT /matches/{id}/status.
type updateStatusRequest struct {
	Status     string              `json:"status"`
	WinnerID   string              `json:"winnerId"`
	FinalScore string              `json:"finalScore"`
	Stats      []model.PlayerStats `json:"playerStats"`
}

// HandleMatches handles POST /matches and GET /matches.
func (h *RegistryHandler) HandleMatches(w http.ResponseWriter, r *http.Request) {
	const op = "api.matches"
	switch r.Method {
	case http.MethodPost:
		var req createMatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if req.ClubID == "" || req.Player1ID == "" || req.Player2ID == "" {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		match, err := h.reg.CreateMatch(r.Context(), req.ClubID, req.Player1ID, req.Player2ID)
		if err != nil {
			writeRegistryError(w, op, err)
			return
		}
		writeJSON(w, http.StatusCreated, match)
	case http.MethodGet:
		matches, err := h.reg.ListMatches(r.Context())
		if err != nil {
			writeRegistryError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, matches)
	default:
		http.NotFound(w, r)
	}
}

// HandleMatchByID handles GET and DELETE on /matches/{id}, plus
// PUT /matches/{id}/status for lifecycle transitions.
func (h *RegistryHandler) HandleMatchByID(w http.ResponseWriter, r *http.Request) {
	const op = "api.match"
	rest := strings.TrimPrefix(r.URL.Path, "/matches/")

	if id, ok := strings.CutSuffix(rest, "/status"); ok && id != "" && !strings.Contains(id, "/") {
		h.handleStatusUpdate(w, r, id)
		return
	}

	id, ok := pathID(r.URL.Path, "/matches/")
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	switch r.Method {
	case http.MethodGet:
		match, err := h.reg.GetMatch(r.Context(), id)
		if err != nil {
			writeRegistryError(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, match)
	case http.MethodDelete:
		if err := h.reg.DeleteMatch(r.Context(), id); err != nil {
			writeRegistryError(w, op, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

func (h *RegistryHandler) handleStatusUpdate(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.match_status"
	if r.Method != http.MethodPut {
		http.NotFound(w, r)
		return
	}
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	match, err := h.reg.UpdateMatchStatus(r.Context(), id, registry.StatusUpdate{
		Status:     registry.MatchStatus(req.Status),
		WinnerID:   req.WinnerID,
		FinalScore: req.FinalScore,
		Stats:      req.Stats,
	})
	if err != nil {
		writeRegistryError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, match)
}
