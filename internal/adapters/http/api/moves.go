// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/NicolasJancke/FantasyFootballCheatSheet/internal/domain/model"
)

// MoveDependencies defines the interface for move processing.
type MoveDependencies interface {
	HandleMove(ctx context.Context, ev model.MoveEvent) (duplicate bool, err error)
}

// MovesHandler handles reorder notifier events.
type MovesHandler struct {
	deps MoveDependencies
}

// NewMovesHandler creates a new moves handler.
func NewMovesHandler(deps MoveDependencies) *MovesHandler {
	return &MovesHandler{deps: deps}
}

// moveRequest mirrors the notifier payload for POST /moves.
type moveRequest struct {
	EventID  string `json:"event_id"`
	PlayerID string `json:"player_id"`
	FromTier string `json:"from_tier"`
	ToTier   string `json:"to_tier"`
	ToIndex  int    `json:"to_index"`
}

func (m moveRequest) validate() error {
	switch {
	case strings.TrimSpace(m.PlayerID) == "":
		return errors.New("missing player_id")
	case strings.TrimSpace(m.ToTier) == "":
		return errors.New("missing to_tier")
	}
	return nil
}

// HandlePostMove handles POST /moves requests. Replayed event ids are
// acknowledged as duplicates without re-applying the move.
func (h *MovesHandler) HandlePostMove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", errors.Join(ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	duplicate, err := h.deps.HandleMove(r.Context(), model.MoveEvent{
		EventID:  req.EventID,
		PlayerID: req.PlayerID,
		FromTier: req.FromTier,
		ToTier:   req.ToTier,
		ToIndex:  req.ToIndex,
	})
	if err != nil {
		status := statusFor(err)
		writeError(w, status, codeFor(status), err)
		return
	}
	if duplicate {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true})
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "applied"})
}
