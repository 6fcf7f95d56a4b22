package board

import (
	"context"

	"github.com/NicolasJancke/FantasyFootballCheatSheet/pkg/logger"
)

// SetManualRank translates a user-entered rank number into a reorder within
// the player's current tier. Out-of-range input is clamped to [1, tierSize]
// rather than rejected. Editing a rank in the unassigned tier is a user
// error, not a system error: it is silently ignored.
func (b *Board) SetManualRank(ctx context.Context, playerID string, requested int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	key, ok := b.owner[playerID]
	if !ok {
		return ErrUnknownPlayer
	}
	if key == UnassignedKey {
		b.log.Debug(ctx, "manual rank ignored for unassigned player",
			logger.String("player", playerID))
		return nil
	}

	size := len(b.byKey[key].order)
	if requested < 1 {
		requested = 1
	}
	if requested > size {
		requested = size
	}

	// Resolve and reorder under the same lock so a concurrent move cannot
	// invalidate the captured tier or clamp. move treats the equal-position
	// case as a clean no-op.
	return b.move(ctx, playerID, key, key, requested-1)
}
