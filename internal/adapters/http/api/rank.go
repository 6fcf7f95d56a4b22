// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/NicolasJancke/FantasyFootballCheatSheet/internal/domain/board"
)

// RankDependencies defines the interface for rank operations.
type RankDependencies interface {
	EditRank(ctx context.Context, playerID string, rank int) error
	RankOf(ctx context.Context, playerID string) (board.Placement, error)
}

// RankHandler handles manual rank edits and rank lookups.
type RankHandler struct {
	deps RankDependencies
}

// NewRankHandler creates a new rank handler.
func NewRankHandler(deps RankDependencies) *RankHandler {
	return &RankHandler{deps: deps}
}

// rankRequest accepts the rank as raw JSON so free-form inline edits
// ("3", 3, "abc") all parse; unusable values fall back to rank 1.
type rankRequest struct {
	PlayerID string          `json:"player_id"`
	Rank     json.RawMessage `json:"rank"`
}

// coerceRank extracts an integer rank from a free-form value.
func coerceRank(raw json.RawMessage) int {
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n
		}
	}
	return 1
}

// HandlePostRank handles POST /rank requests.
func (h *RankHandler) HandlePostRank(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req rankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", errors.Join(ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.PlayerID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("missing player_id"))
		return
	}
	if err := h.deps.EditRank(r.Context(), req.PlayerID, coerceRank(req.Rank)); err != nil {
		status := statusFor(err)
		writeError(w, status, codeFor(status), err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "applied"})
}

// HandleGetRank handles GET /rank/{player_id} requests.
func (h *RankHandler) HandleGetRank(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/rank/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	placement, err := h.deps.RankOf(r.Context(), id)
	if err != nil {
		status := statusFor(err)
		writeError(w, status, codeFor(status), err)
		return
	}
	writeJSON(w, http.StatusOK, placement)
}
