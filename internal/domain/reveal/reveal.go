// Package reveal materializes a bounded prefix of a large player sequence so
// the view layer never has to render thousands of rows at once. The cursor
// only exposes RevealMore; deciding when more capacity is available (scroll
// position, pagination, timers) is the caller's concern.
package reveal

import (
	"context"
	"sync"

	"github.com/NicolasJancke/FantasyFootballCheatSheet/internal/domain/model"
	"github.com/NicolasJancke/FantasyFootballCheatSheet/pkg/metrics"
)

// defaultChunkSize is how many logical slots one RevealMore consumes when
// the caller does not ask for a specific amount.
const defaultChunkSize = 30

// Cursor tracks how much of the source sequence has been materialized.
// revealed is monotone and never exceeds the sequence length; once the end
// is reached further RevealMore calls are no-ops.
type Cursor struct {
	mu        sync.Mutex
	seq       []model.Player
	revealed  int
	rendered  map[string]struct{} // ids already visible elsewhere; skipped on reveal
	out       []model.Player      // materialized output in reveal order
	outSet    map[string]struct{} // ids present in out
	chunkSize int
}

// Option applies a configuration option to the Cursor.
type Option func(*Cursor)

// WithChunkSize sets the default number of slots consumed per reveal.
func WithChunkSize(n int) Option {
	return func(c *Cursor) {
		if n > 0 {
			c.chunkSize = n
		}
	}
}

// NewCursor constructs an idle cursor; SetSequence starts revealing.
func NewCursor(opts ...Option) *Cursor {
	c := &Cursor{
		rendered:  make(map[string]struct{}),
		outSet:    make(map[string]struct{}),
		chunkSize: defaultChunkSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetSequence replaces the backing sequence and resets the cursor to the
// start. Materialized output and the rendered set are discarded; callers
// re-mark ids that remain visible elsewhere (e.g. restored tier members)
// after swapping sequences.
func (c *Cursor) SetSequence(ctx context.Context, seq []model.Player) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq = append(c.seq[:0:0], seq...)
	c.revealed = 0
	c.out = nil
	c.outSet = make(map[string]struct{})
	c.rendered = make(map[string]struct{})
	metrics.UpdateRevealedPlayers(0)
}

// MarkRendered records that an id is already visible so the cursor skips it
// instead of materializing a duplicate.
func (c *Cursor) MarkRendered(ids ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		c.rendered[id] = struct{}{}
	}
}

// RevealMore consumes up to n logical slots from the sequence and returns
// the newly materialized players. Slots holding an already-rendered id are
// consumed without producing output, so the cursor never duplicates and
// never stalls on restored players. n <= 0 uses the configured chunk size.
func (c *Cursor) RevealMore(ctx context.Context, n int) []model.Player {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n <= 0 {
		n = c.chunkSize
	}
	if c.revealed >= len(c.seq) {
		return nil
	}

	end := c.revealed + n
	if end > len(c.seq) {
		end = len(c.seq)
	}

	var batch []model.Player
	for _, p := range c.seq[c.revealed:end] {
		if _, dup := c.rendered[p.ID]; dup {
			continue
		}
		c.rendered[p.ID] = struct{}{}
		c.outSet[p.ID] = struct{}{}
		c.out = append(c.out, p)
		batch = append(batch, p)
	}
	c.revealed = end

	metrics.RecordRevealBatch()
	metrics.UpdateRevealedPlayers(len(c.out))
	return batch
}

// Materialize appends a player to the output out of band, for players that
// return to the pool after being placed elsewhere. Ids already materialized
// are left in place; the cursor position does not move.
func (c *Cursor) Materialize(p model.Player) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.outSet[p.ID]; ok {
		return
	}
	c.rendered[p.ID] = struct{}{}
	c.outSet[p.ID] = struct{}{}
	c.out = append(c.out, p)
	metrics.UpdateRevealedPlayers(len(c.out))
}

// Revealed returns how many logical slots have been consumed.
func (c *Cursor) Revealed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.revealed
}

// Exhausted reports whether the whole sequence has been consumed.
func (c *Cursor) Exhausted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.revealed >= len(c.seq)
}

// Materialized returns the revealed players in order.
func (c *Cursor) Materialized(ctx context.Context) []model.Player {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Player(nil), c.out...)
}
