// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/NicolasJancke/FantasyFootballCheatSheet/internal/domain/filter"
)

// FilterDependencies defines the interface for filter selection.
type FilterDependencies interface {
	SetNameFilter(ctx context.Context, query string)
	SetPositionFilter(ctx context.Context, pos string) error
	FilterState(ctx context.Context) filter.State
}

// FiltersHandler handles filter selection requests.
type FiltersHandler struct {
	deps FilterDependencies
}

// NewFiltersHandler creates a new filters handler.
func NewFiltersHandler(deps FilterDependencies) *FiltersHandler {
	return &FiltersHandler{deps: deps}
}

// filterRequest carries partial updates; omitted fields keep their value.
type filterRequest struct {
	Query    *string `json:"query"`
	Position *string `json:"position"`
}

// HandlePostFilters handles POST /filters requests and echoes the
// resulting filter state.
func (h *FiltersHandler) HandlePostFilters(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req filterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", errors.Join(ErrBadRequest, err))
		return
	}
	if req.Query != nil {
		h.deps.SetNameFilter(r.Context(), *req.Query)
	}
	if req.Position != nil {
		if err := h.deps.SetPositionFilter(r.Context(), *req.Position); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
	}
	writeJSON(w, http.StatusOK, h.deps.FilterState(r.Context()))
}
