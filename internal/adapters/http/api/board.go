// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// BoardDependencies defines the interface for board read operations.
type BoardDependencies interface {
	BoardView(ctx context.Context) []TierView
}

// BoardHandler handles board read requests.
type BoardHandler struct {
	deps BoardDependencies
}

// NewBoardHandler creates a new board handler.
func NewBoardHandler(deps BoardDependencies) *BoardHandler {
	return &BoardHandler{deps: deps}
}

// HandleGetBoard handles GET /board requests.
func (h *BoardHandler) HandleGetBoard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.BoardView(r.Context()))
}
