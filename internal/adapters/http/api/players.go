// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/NicolasJancke/FantasyFootballCheatSheet/internal/domain/model"
)

// PlayerDependencies defines the interface for pool materialization.
type PlayerDependencies interface {
	VisiblePlayers(ctx context.Context) []model.Player
	RevealMore(ctx context.Context) []model.Player
}

// PlayersHandler handles unassigned pool requests.
type PlayersHandler struct {
	deps PlayerDependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps PlayerDependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

type playersResponse struct {
	Players []model.Player `json:"players"`
}

// HandleGetPlayers handles GET /players requests: the materialized
// unassigned players that pass the current filter, in reveal order.
func (h *PlayersHandler) HandleGetPlayers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	players := h.deps.VisiblePlayers(r.Context())
	if players == nil {
		players = []model.Player{}
	}
	writeJSON(w, http.StatusOK, playersResponse{Players: players})
}

// HandlePostReveal handles POST /players/reveal requests and returns the
// newly materialized chunk. An exhausted cursor yields an empty list.
func (h *PlayersHandler) HandlePostReveal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	revealed := h.deps.RevealMore(r.Context())
	if revealed == nil {
		revealed = []model.Player{}
	}
	writeJSON(w, http.StatusOK, playersResponse{Players: revealed})
}
