// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// TierDependencies defines the interface for tier creation.
type TierDependencies interface {
	AddTier(ctx context.Context) (string, error)
}

// TiersHandler handles tier creation requests.
type TiersHandler struct {
	deps TierDependencies
}

// NewTiersHandler creates a new tiers handler.
func NewTiersHandler(deps TierDependencies) *TiersHandler {
	return &TiersHandler{deps: deps}
}

type tierResponse struct {
	Tier string `json:"tier"`
}

// HandlePostTier handles POST /tiers requests.
func (h *TiersHandler) HandlePostTier(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	key, err := h.deps.AddTier(r.Context())
	if err != nil {
		status := statusFor(err)
		writeError(w, status, codeFor(status), err)
		return
	}
	writeJSON(w, http.StatusCreated, tierResponse{Tier: key})
}
