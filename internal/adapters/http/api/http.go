// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/NicolasJancke/FantasyFootballCheatSheet/internal/app"
	"github.com/NicolasJancke/FantasyFootballCheatSheet/internal/domain/board"
	"github.com/NicolasJancke/FantasyFootballCheatSheet/internal/domain/filter"
	"github.com/NicolasJancke/FantasyFootballCheatSheet/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Board mutations.
	HandleMove(ctx context.Context, ev model.MoveEvent) (duplicate bool, err error)
	EditRank(ctx context.Context, playerID string, rank int) error
	AddTier(ctx context.Context) (string, error)

	// Persistence controls.
	SaveNow(ctx context.Context) error
	ResetAll(ctx context.Context) error

	// Filters and pool materialization.
	SetNameFilter(ctx context.Context, query string)
	SetPositionFilter(ctx context.Context, pos string) error
	FilterState(ctx context.Context) filter.State
	RevealMore(ctx context.Context) []model.Player
	VisiblePlayers(ctx context.Context) []model.Player

	// Read model.
	BoardView(ctx context.Context) []TierView
	RankOf(ctx context.Context, playerID string) (board.Placement, error)
}

// TierView mirrors the read shape returned by board queries.
type TierView = app.TierView

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	boardHandler   *BoardHandler
	tiersHandler   *TiersHandler
	movesHandler   *MovesHandler
	rankHandler    *RankHandler
	playersHandler *PlayersHandler
	filtersHandler *FiltersHandler
	controlHandler *ControlHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		boardHandler:   NewBoardHandler(deps),
		tiersHandler:   NewTiersHandler(deps),
		movesHandler:   NewMovesHandler(deps),
		rankHandler:    NewRankHandler(deps),
		playersHandler: NewPlayersHandler(deps),
		filtersHandler: NewFiltersHandler(deps),
		controlHandler: NewControlHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/board", MetricsMiddleware(s.boardHandler.HandleGetBoard, "board"))
	mux.HandleFunc("/tiers", MetricsMiddleware(s.tiersHandler.HandlePostTier, "tiers"))
	mux.HandleFunc("/moves", MetricsMiddleware(s.movesHandler.HandlePostMove, "moves"))
	mux.HandleFunc("/rank", MetricsMiddleware(s.rankHandler.HandlePostRank, "rank"))
	mux.HandleFunc("/rank/", MetricsMiddleware(s.rankHandler.HandleGetRank, "rank"))
	mux.HandleFunc("/players", MetricsMiddleware(s.playersHandler.HandleGetPlayers, "players"))
	mux.HandleFunc("/players/reveal", MetricsMiddleware(s.playersHandler.HandlePostReveal, "reveal"))
	mux.HandleFunc("/filters", MetricsMiddleware(s.filtersHandler.HandlePostFilters, "filters"))
	mux.HandleFunc("/save", MetricsMiddleware(s.controlHandler.HandlePostSave, "save"))
	mux.HandleFunc("/reset", MetricsMiddleware(s.controlHandler.HandlePostReset, "reset"))
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate,omitempty"`
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

// statusFor translates domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, board.ErrUnknownTier), errors.Is(err, board.ErrUnknownPlayer):
		return http.StatusNotFound
	case errors.Is(err, board.ErrNotReady), errors.Is(err, board.ErrTooManyTiers):
		return http.StatusConflict
	case errors.Is(err, app.ErrBadPosition):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func codeFor(status int) string {
	switch status {
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusBadRequest:
		return "bad_request"
	default:
		return "internal_error"
	}
}
