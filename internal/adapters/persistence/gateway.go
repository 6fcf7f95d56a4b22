// Package persistence serializes the board to durable storage and restores
// it on load. The in-memory board stays authoritative for the session: a
// failed write is a warning, never a fatal error, and a corrupt stored value
// is treated as an empty board.
package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/NicolasJancke/FantasyFootballCheatSheet/internal/adapters/storage"
	"github.com/NicolasJancke/FantasyFootballCheatSheet/internal/domain/board"
	"github.com/NicolasJancke/FantasyFootballCheatSheet/pkg/logger"
	"github.com/NicolasJancke/FantasyFootballCheatSheet/pkg/metrics"
)

// boardKey is the reserved storage key holding the whole serialized board.
const boardKey = "cheatsheet/board/v1"

// Gateway reads and writes board snapshots through a storage.Store.
type Gateway struct {
	store storage.Store
	log   logger.Logger
}

// Option applies a configuration option to the Gateway.
type Option func(*Gateway)

// WithLogger sets a custom logger for the gateway.
func WithLogger(log logger.Logger) Option {
	return func(g *Gateway) {
		if log != nil {
			g.log = log
		}
	}
}

// New creates a gateway over the given store.
func New(store storage.Store, opts ...Option) *Gateway {
	g := &Gateway{
		store: store,
		log:   logger.Get().Named("persistence"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Save serializes the snapshot under the reserved key. The caller decides
// when to invoke it (debounced after mutations, immediately on save-now).
func (g *Gateway) Save(ctx context.Context, snap []board.TierOrder) error {
	data, err := json.Marshal(snap)
	if err != nil {
		metrics.RecordSaveFailure()
		return fmt.Errorf("marshal board: %w", err)
	}
	if err := g.store.Set(ctx, boardKey, string(data)); err != nil {
		metrics.RecordSaveFailure()
		metrics.RecordErrorByComponent("persistence", "write_failed")
		return fmt.Errorf("write board: %w", err)
	}
	metrics.RecordSave()
	g.log.Debug(ctx, "board saved", logger.Int("tiers", len(snap)))
	return nil
}

// Load reads and parses the stored board. An absent key or a malformed
// value yields an empty snapshot with a warning; neither blocks startup.
func (g *Gateway) Load(ctx context.Context) []board.TierOrder {
	raw, ok, err := g.store.Get(ctx, boardKey)
	if err != nil {
		g.log.Warn(ctx, "board read failed, starting empty", logger.Error(err))
		metrics.RecordErrorByComponent("persistence", "read_failed")
		return nil
	}
	if !ok {
		return nil
	}

	var snap []board.TierOrder
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		g.log.Warn(ctx, "stored board unparseable, starting empty", logger.Error(err))
		metrics.RecordLoadCorruption()
		return nil
	}
	return snap
}

// Reset clears the stored board, forcing the next load to start fresh.
func (g *Gateway) Reset(ctx context.Context) error {
	if err := g.store.Delete(ctx, boardKey); err != nil {
		return fmt.Errorf("clear board: %w", err)
	}
	g.log.Info(ctx, "stored board cleared")
	return nil
}
