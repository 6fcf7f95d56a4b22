// Package app wires the tier board, player pool, persistence and filtering
// into the service consumed by the HTTP API.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/NicolasJancke/FantasyFootballCheatSheet/internal/adapters/persistence"
	"github.com/NicolasJancke/FantasyFootballCheatSheet/internal/adapters/source"
	"github.com/NicolasJancke/FantasyFootballCheatSheet/internal/adapters/storage"
	"github.com/NicolasJancke/FantasyFootballCheatSheet/internal/domain/board"
	"github.com/NicolasJancke/FantasyFootballCheatSheet/internal/domain/dedupe"
	"github.com/NicolasJancke/FantasyFootballCheatSheet/internal/domain/filter"
	"github.com/NicolasJancke/FantasyFootballCheatSheet/internal/domain/model"
	"github.com/NicolasJancke/FantasyFootballCheatSheet/internal/domain/reveal"
	"github.com/NicolasJancke/FantasyFootballCheatSheet/pkg/logger"
	"github.com/NicolasJancke/FantasyFootballCheatSheet/pkg/metrics"
)

// Service implements the API dependencies for the cheat sheet.
type Service struct {
	mu sync.RWMutex

	// Core components
	board   *board.Board
	cursor  *reveal.Cursor
	deduper dedupe.Deduper
	gateway *persistence.Gateway
	store   storage.Store
	client  *source.Client
	saver   *saver

	// Pool state
	pool   map[string]model.Player
	roster []model.Player // pool in natural sort order

	// Process-wide filter selection
	filter filter.State

	// Configuration
	dataDir      string
	sourceURL    string
	fetchTimeout time.Duration
	saveDebounce time.Duration
	chunkSize    int
	dedupeSize   int
	maxTiers     int

	// State
	started bool

	log logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		fetchTimeout: 30 * time.Second,
		saveDebounce: defaultSaveDebounce,
		chunkSize:    30,
		dedupeSize:   10000,
		log:          nil, // resolved in Start
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens storage, fetches the player pool, restores the persisted
// board and reveals the first chunk of the unassigned pool.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.log == nil {
		s.log = logger.Get().Named("app")
	}
	s.log.Info(ctx, "starting cheat sheet service...")

	if s.store == nil {
		if s.dataDir == "" {
			s.store = storage.NewMemStore()
			s.log.Warn(ctx, "no data_dir configured, board will not survive restarts")
		} else {
			st, err := storage.NewPebbleStore(ctx, s.dataDir)
			if err != nil {
				return fmt.Errorf("open storage: %w", err)
			}
			s.store = st
		}
	}
	s.gateway = persistence.New(s.store)
	s.deduper = dedupe.New(dedupe.WithMaxSize(s.dedupeSize))

	// One fetch at startup; a failed fetch degrades to an empty pool
	// instead of blocking the service.
	if s.pool == nil {
		if s.client == nil {
			s.client = source.New(
				source.WithBaseURL(s.sourceURL),
				source.WithTimeout(s.fetchTimeout),
			)
		}
		pool, err := s.client.Fetch(ctx)
		if err != nil {
			s.log.Warn(ctx, "player pool fetch failed, continuing with empty pool", logger.Error(err))
			metrics.RecordErrorByComponent("source", "fetch_failed")
		}
		s.pool = pool
	}
	s.roster = source.SortPool(s.pool)

	var boardOpts []board.Option
	if s.maxTiers > 0 {
		boardOpts = append(boardOpts, board.WithMaxTiers(s.maxTiers))
	}
	s.board = board.New(boardOpts...)
	s.board.Restore(ctx, s.gateway.Load(ctx))
	s.board.Reconcile(ctx, s.rosterIDs())

	s.cursor = reveal.NewCursor(reveal.WithChunkSize(s.chunkSize))
	s.seedCursor(ctx)

	s.saver = newSaver(s.saveDebounce, s.persist, logger.Get().Named("saver"))
	go s.saver.Run(ctx)
	if s.board.ConsumeDirty() {
		// Reconcile dropped stale ids; persist the cleaned board.
		s.saver.Schedule()
	}

	s.started = true
	tiers, players := s.board.Counts(ctx)
	s.log.Info(ctx, "cheat sheet service started",
		logger.Int("players", players),
		logger.Int("tiers", tiers),
		logger.Int("chunkSize", s.chunkSize),
	)
	return nil
}

// Stop flushes any pending save and closes storage.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.saver != nil {
		_ = s.saver.Shutdown(ctx)
	}
	if s.store != nil {
		_ = s.store.Close()
	}
	s.started = false
	s.log.Info(ctx, "cheat sheet service stopped")
}

// rosterIDs returns the pool ids in natural sort order. Lock must be held.
func (s *Service) rosterIDs() []string {
	ids := make([]string, len(s.roster))
	for i, p := range s.roster {
		ids[i] = p.ID
	}
	return ids
}

// seedCursor points the cursor at the unassigned tier's sequence and
// reveals the first chunk. Players already placed in ranked tiers are
// pre-marked so a restored board never materializes them twice.
// Lock must be held.
func (s *Service) seedCursor(ctx context.Context) {
	unassigned := s.board.Unassigned(ctx)
	seq := make([]model.Player, 0, len(unassigned))
	for _, id := range unassigned {
		if p, ok := s.pool[id]; ok {
			seq = append(seq, p)
		}
	}
	s.cursor.SetSequence(ctx, seq)

	for _, to := range s.board.Snapshot(ctx) {
		if to.Key == board.UnassignedKey {
			continue
		}
		s.cursor.MarkRendered(to.Players...)
	}
	s.cursor.RevealMore(ctx, 0)
}

// persist writes the current board if a mutation is pending. Failures are
// warnings; the in-memory board stays authoritative and the next mutation's
// debounced write tries again.
func (s *Service) persist(ctx context.Context) {
	if !s.board.ConsumeDirty() {
		return
	}
	if err := s.gateway.Save(ctx, s.board.Snapshot(ctx)); err != nil {
		s.log.Warn(ctx, "board save failed, keeping in-memory state", logger.Error(err))
	}
}

// HandleMove applies one reorder notifier event. Replayed event ids are
// acknowledged without re-applying.
func (s *Service) HandleMove(ctx context.Context, ev model.MoveEvent) (duplicate bool, err error) {
	if ev.EventID == "" {
		ev.EventID = uuid.NewString()
	}
	if s.deduper.SeenAndRecord(ctx, ev.EventID) {
		metrics.RecordMoveDuplicate()
		return true, nil
	}

	if err := s.board.MovePlayer(ctx, ev.PlayerID, ev.FromTier, ev.ToTier, ev.ToIndex); err != nil {
		// The event never applied; allow a corrected retry under the same id.
		s.deduper.Unrecord(ctx, ev.EventID)
		return false, err
	}
	s.saver.Schedule()

	// A player dragged back into the pool becomes visible again without
	// waiting for the cursor to reach it.
	if ev.ToTier == board.UnassignedKey {
		s.mu.RLock()
		p, ok := s.pool[ev.PlayerID]
		s.mu.RUnlock()
		if ok {
			s.cursor.Materialize(p)
		}
	}
	return false, nil
}

// EditRank applies a manual rank edit within the player's current tier.
func (s *Service) EditRank(ctx context.Context, playerID string, rank int) error {
	if err := s.board.SetManualRank(ctx, playerID, rank); err != nil {
		return err
	}
	metrics.RecordManualRankEdit()
	s.saver.Schedule()
	return nil
}

// AddTier creates the next numbered tier.
func (s *Service) AddTier(ctx context.Context) (string, error) {
	key, err := s.board.CreateTier(ctx)
	if err != nil {
		return "", err
	}
	s.saver.Schedule()
	return key, nil
}

// SaveNow writes the board immediately, bypassing the debounce.
func (s *Service) SaveNow(ctx context.Context) error {
	s.board.ConsumeDirty()
	return s.gateway.Save(ctx, s.board.Snapshot(ctx))
}

// ResetAll clears the stored board and rebuilds the initial state: every
// player back in the unassigned tier, cursor rewound to the first chunk.
func (s *Service) ResetAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gateway.Reset(ctx); err != nil {
		s.log.Warn(ctx, "clearing stored board failed", logger.Error(err))
	}
	s.board.Reset(ctx, s.rosterIDs())
	s.seedCursor(ctx)
	s.saver.Schedule()
	return nil
}

// SetNameFilter updates the name query. Keystroke debouncing is the view's
// concern; each call here applies immediately.
func (s *Service) SetNameFilter(ctx context.Context, query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.NameQuery = query
}

// SetPositionFilter updates the position selector; empty clears it.
func (s *Service) SetPositionFilter(ctx context.Context, pos string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pos == "" {
		s.filter.Position = ""
		return nil
	}
	parsed, ok := model.ParsePosition(pos)
	if !ok {
		return fmt.Errorf("%w: %s", ErrBadPosition, pos)
	}
	s.filter.Position = parsed
	return nil
}

// FilterState returns the current filter selection.
func (s *Service) FilterState(ctx context.Context) filter.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// RevealMore materializes the next chunk of the unassigned pool and returns
// the newly revealed players.
func (s *Service) RevealMore(ctx context.Context) []model.Player {
	return s.cursor.RevealMore(ctx, 0)
}

// VisiblePlayers returns the materialized players still sitting in the
// unassigned tier that pass the current filter, in reveal order. The board
// is canonical: a materialized player moved into a ranked tier drops out of
// the pool view immediately.
func (s *Service) VisiblePlayers(ctx context.Context) []model.Player {
	s.mu.RLock()
	st := s.filter
	s.mu.RUnlock()

	unassigned := s.board.Unassigned(ctx)
	inPool := make(map[string]struct{}, len(unassigned))
	for _, id := range unassigned {
		inPool[id] = struct{}{}
	}

	visible := make([]model.Player, 0, len(unassigned))
	for _, p := range s.cursor.Materialized(ctx) {
		if _, ok := inPool[p.ID]; ok {
			visible = append(visible, p)
		}
	}
	return filter.Apply(visible, st)
}

// TierView is one tier of the board read model.
type TierView struct {
	Tier    string      `json:"tier"`
	Players []PlayerRow `json:"players"`
}

// PlayerRow is a player joined with its derived rank.
type PlayerRow struct {
	model.Player
	Rank int `json:"rank,omitempty"`
}

// BoardView projects the canonical board state for rendering: tiers in
// order, each player joined with its pool record and computed rank.
func (s *Service) BoardView(ctx context.Context) []TierView {
	snap := s.board.Snapshot(ctx)
	ranks := s.board.Ranks(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]TierView, len(snap))
	for i, to := range snap {
		rows := make([]PlayerRow, 0, len(to.Players))
		for _, id := range to.Players {
			p, ok := s.pool[id]
			if !ok {
				continue
			}
			rows = append(rows, PlayerRow{Player: p, Rank: ranks[id]})
		}
		out[i] = TierView{Tier: to.Key, Players: rows}
	}
	return out
}

// RankOf returns the placement of one player.
func (s *Service) RankOf(ctx context.Context, playerID string) (board.Placement, error) {
	return s.board.RankOf(ctx, playerID)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":   s.started,
		"chunkSize": s.chunkSize,
	}
	if s.started {
		tiers, players := s.board.Counts(ctx)
		stats["tiers"] = tiers
		stats["players"] = players
		stats["revealed"] = s.cursor.Revealed()
		stats["dedupeSize"] = s.deduper.Size()

		metrics.UpdateTierCount(tiers)
		metrics.UpdatePlayerCount(players)
	}
	return stats
}
