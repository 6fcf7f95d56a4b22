// Package board holds the canonical tier ranking state: the ordered set of
// tiers and, per tier, the ordered sequence of player ids. Rendering is a
// projection of this state, never the other way around.
package board

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/NicolasJancke/FantasyFootballCheatSheet/pkg/logger"
	"github.com/NicolasJancke/FantasyFootballCheatSheet/pkg/metrics"
)

// UnassignedKey is the reserved key of the tier holding players not yet
// placed into a ranked tier. It always exists, is always last, and is
// excluded from rank numbering.
const UnassignedKey = "unassigned"

// tierKeyPrefix prefixes the numbered user tier keys: tier-1, tier-2, ...
const tierKeyPrefix = "tier-"

// TierOrder is the serialized shape of one tier: its key and player ids in
// display order. Board snapshots are ordered slices of these.
type TierOrder struct {
	Key     string   `json:"tier"`
	Players []string `json:"players"`
}

type tier struct {
	key   string
	order []string
}

// Board is the tier registry. All methods are safe for concurrent use.
type Board struct {
	mu    sync.RWMutex
	tiers []*tier          // ordered; unassigned is always the last element
	byKey map[string]*tier // key -> tier
	owner map[string]string // player id -> tier key

	ready    bool // set by the first Reconcile or Reset
	dirty    bool // unsaved mutation pending
	maxTiers int  // 0 means unlimited

	log logger.Logger
}

// Option applies a configuration option to the Board.
type Option func(*Board)

// WithLogger sets a custom logger for the board.
func WithLogger(log logger.Logger) Option {
	return func(b *Board) {
		if log != nil {
			b.log = log
		}
	}
}

// WithMaxTiers caps the number of user tiers that can be created.
func WithMaxTiers(n int) Option {
	return func(b *Board) {
		if n > 0 {
			b.maxTiers = n
		}
	}
}

// New constructs a board holding only the unassigned tier. The board is not
// ready for tier creation until the player pool has been reconciled.
func New(opts ...Option) *Board {
	b := &Board{
		byKey: make(map[string]*tier),
		owner: make(map[string]string),
		log:   logger.Get().Named("board"),
	}
	for _, opt := range opts {
		opt(b)
	}
	un := &tier{key: UnassignedKey}
	b.tiers = []*tier{un}
	b.byKey[UnassignedKey] = un
	return b
}

// CreateTier appends a new numbered tier before the unassigned tier and
// returns its key. It fails with ErrNotReady before the first Reconcile.
func (b *Board) CreateTier(ctx context.Context) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.ready {
		return "", ErrNotReady
	}
	if b.maxTiers > 0 && len(b.tiers)-1 >= b.maxTiers {
		return "", ErrTooManyTiers
	}

	key := fmt.Sprintf("%s%d", tierKeyPrefix, b.nextTierNumber())
	t := &tier{key: key}
	// Insert before the trailing unassigned tier.
	b.tiers = append(b.tiers[:len(b.tiers)-1], t, b.tiers[len(b.tiers)-1])
	b.byKey[key] = t
	b.dirty = true

	metrics.RecordTierCreated()
	metrics.UpdateTierCount(len(b.tiers))
	b.log.Info(ctx, "tier created", logger.String("tier", key))
	return key, nil
}

// nextTierNumber is one past the highest numbered tier. Lock must be held.
func (b *Board) nextTierNumber() int {
	highest := 0
	for _, t := range b.tiers {
		n, ok := tierNumber(t.key)
		if ok && n > highest {
			highest = n
		}
	}
	return highest + 1
}

func tierNumber(key string) (int, bool) {
	if !strings.HasPrefix(key, tierKeyPrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(key, tierKeyPrefix))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// MovePlayer removes the player from its current tier and inserts it into
// the destination tier at toIndex, clamped to [0, len]. A move that would
// leave the position unchanged is a no-op and does not mark the board dirty.
func (b *Board) MovePlayer(ctx context.Context, playerID, fromKey, toKey string, toIndex int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.move(ctx, playerID, fromKey, toKey, toIndex)
}

// move is MovePlayer without the locking, shared with the manual rank path
// so resolve-and-reorder happens in one critical section. Lock must be held.
func (b *Board) move(ctx context.Context, playerID, fromKey, toKey string, toIndex int) error {
	dst, ok := b.byKey[toKey]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTier, toKey)
	}
	ownerKey, ok := b.owner[playerID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPlayer, playerID)
	}
	// The registry is canonical; a stale fromKey from the notifier is
	// overridden by the actual owner.
	if ownerKey != fromKey {
		b.log.Warn(ctx, "move source tier disagrees with registry, using registry",
			logger.String("player", playerID),
			logger.String("claimed", fromKey),
			logger.String("actual", ownerKey),
		)
		fromKey = ownerKey
	}
	src := b.byKey[fromKey]

	srcIdx := indexOf(src.order, playerID)
	if srcIdx < 0 {
		return fmt.Errorf("%w: %s not in %s", ErrUnknownPlayer, playerID, fromKey)
	}

	src.order = append(src.order[:srcIdx], src.order[srcIdx+1:]...)

	if toIndex < 0 {
		toIndex = 0
	}
	if toIndex > len(dst.order) {
		toIndex = len(dst.order)
	}

	// Same tier, same resulting slot: restore and bail without dirtying.
	if src == dst && toIndex == srcIdx {
		src.order = insertAt(src.order, srcIdx, playerID)
		return nil
	}

	dst.order = insertAt(dst.order, toIndex, playerID)
	b.owner[playerID] = toKey
	b.dirty = true

	metrics.RecordMoveApplied()
	return nil
}

// Reconcile reconciles the board against the fetched player pool: persisted
// ids missing from the pool are dropped with a warning, and pool ids absent
// from every tier are appended to the unassigned tier in pool order. The
// board becomes ready for mutations afterwards. Returns the dropped count.
func (b *Board) Reconcile(ctx context.Context, pool []string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	inPool := make(map[string]struct{}, len(pool))
	for _, id := range pool {
		inPool[id] = struct{}{}
	}

	b.owner = make(map[string]string, len(pool))
	var dropped []string
	for _, t := range b.tiers {
		kept := t.order[:0]
		for _, id := range t.order {
			if _, ok := inPool[id]; !ok {
				dropped = append(dropped, id)
				continue
			}
			if _, dup := b.owner[id]; dup {
				// Same id persisted in two tiers; first placement wins.
				dropped = append(dropped, id)
				continue
			}
			b.owner[id] = t.key
			kept = append(kept, id)
		}
		t.order = kept
	}

	un := b.byKey[UnassignedKey]
	for _, id := range pool {
		if _, placed := b.owner[id]; !placed {
			un.order = append(un.order, id)
			b.owner[id] = UnassignedKey
		}
	}

	if len(dropped) > 0 {
		b.dirty = true
		b.log.Warn(ctx, "dropped persisted players missing from pool",
			logger.Int("count", len(dropped)),
			logger.Strings("players", dropped),
		)
	}
	b.ready = true

	metrics.RecordDanglingDropped(len(dropped))
	metrics.UpdateTierCount(len(b.tiers))
	metrics.UpdatePlayerCount(len(b.owner))
	return len(dropped)
}

// Restore replaces the tier state from a persisted snapshot. The board stays
// not-ready until Reconcile runs against the current pool.
func (b *Board) Restore(ctx context.Context, snap []TierOrder) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tiers = b.tiers[:0]
	b.byKey = make(map[string]*tier, len(snap)+1)
	b.owner = make(map[string]string)

	var un *tier
	for _, to := range snap {
		if _, dup := b.byKey[to.Key]; dup {
			b.log.Warn(ctx, "duplicate tier key in snapshot, ignoring", logger.String("tier", to.Key))
			continue
		}
		t := &tier{key: to.Key, order: append([]string(nil), to.Players...)}
		b.byKey[to.Key] = t
		if to.Key == UnassignedKey {
			un = t
			continue
		}
		b.tiers = append(b.tiers, t)
	}
	if un == nil {
		un = &tier{key: UnassignedKey}
		b.byKey[UnassignedKey] = un
	}
	b.tiers = append(b.tiers, un)
	b.ready = false
}

// Reset discards all user tiers and repopulates the unassigned tier from the
// pool in its natural order.
func (b *Board) Reset(ctx context.Context, pool []string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	un := &tier{key: UnassignedKey, order: append([]string(nil), pool...)}
	b.tiers = []*tier{un}
	b.byKey = map[string]*tier{UnassignedKey: un}
	b.owner = make(map[string]string, len(pool))
	for _, id := range pool {
		b.owner[id] = UnassignedKey
	}
	b.ready = true
	b.dirty = true

	metrics.UpdateTierCount(1)
	metrics.UpdatePlayerCount(len(pool))
	b.log.Info(ctx, "board reset", logger.Int("players", len(pool)))
}

// Snapshot returns the ordered tier state as deep copies, suitable for
// persistence and for the API read model.
func (b *Board) Snapshot(ctx context.Context) []TierOrder {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]TierOrder, len(b.tiers))
	for i, t := range b.tiers {
		out[i] = TierOrder{Key: t.key, Players: append([]string(nil), t.order...)}
	}
	return out
}

// TierOf returns the key of the tier currently holding the player.
func (b *Board) TierOf(ctx context.Context, playerID string) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	key, ok := b.owner[playerID]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownPlayer, playerID)
	}
	return key, nil
}

// Unassigned returns the player ids of the unassigned tier in order.
func (b *Board) Unassigned(ctx context.Context) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]string(nil), b.byKey[UnassignedKey].order...)
}

// Counts reports the number of tiers (including unassigned) and players.
func (b *Board) Counts(ctx context.Context) (tiers, players int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.tiers), len(b.owner)
}

// Ready reports whether the pool has been reconciled.
func (b *Board) Ready() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.ready
}

// ConsumeDirty returns whether an unsaved mutation is pending and clears the
// flag. The save scheduler pairs this with Snapshot.
func (b *Board) ConsumeDirty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	d := b.dirty
	b.dirty = false
	return d
}

func indexOf(order []string, id string) int {
	for i, v := range order {
		if v == id {
			return i
		}
	}
	return -1
}

func insertAt(order []string, i int, id string) []string {
	order = append(order, "")
	copy(order[i+1:], order[i:])
	order[i] = id
	return order
}
