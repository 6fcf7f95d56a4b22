// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// ControlDependencies defines the interface for persistence controls.
type ControlDependencies interface {
	SaveNow(ctx context.Context) error
	ResetAll(ctx context.Context) error
}

// ControlHandler handles explicit save and reset requests.
type ControlHandler struct {
	deps ControlDependencies
}

// NewControlHandler creates a new control handler.
func NewControlHandler(deps ControlDependencies) *ControlHandler {
	return &ControlHandler{deps: deps}
}

// HandlePostSave handles POST /save requests, bypassing the debounce.
func (h *ControlHandler) HandlePostSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if err := h.deps.SaveNow(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "saved"})
}

// HandlePostReset handles POST /reset requests: stored board cleared,
// every player returned to the unassigned tier.
func (h *ControlHandler) HandlePostReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if err := h.deps.ResetAll(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "reset"})
}
