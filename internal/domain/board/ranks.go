package board

import (
	"context"
	"fmt"
)

// Placement is a player's derived position on the board. Rank is the 1-based
// index within the owning tier's order; it is 0 for the unassigned tier,
// which is excluded from rank numbering.
type Placement struct {
	Tier string `json:"tier"`
	Rank int    `json:"rank"`
}

// Ranks recomputes the 1-based rank of every player in every non-unassigned
// tier. Ranks are a view of tier order and are never stored: within a tier
// of N players the result is exactly 1..N with no gaps or duplicates.
func (b *Board) Ranks(ctx context.Context) map[string]int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ranks := make(map[string]int)
	for _, t := range b.tiers {
		if t.key == UnassignedKey {
			continue
		}
		for i, id := range t.order {
			ranks[id] = i + 1
		}
	}
	return ranks
}

// RankOf returns the placement of a single player.
func (b *Board) RankOf(ctx context.Context, playerID string) (Placement, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	key, ok := b.owner[playerID]
	if !ok {
		return Placement{}, fmt.Errorf("%w: %s", ErrUnknownPlayer, playerID)
	}
	if key == UnassignedKey {
		return Placement{Tier: UnassignedKey}, nil
	}
	idx := indexOf(b.byKey[key].order, playerID)
	return Placement{Tier: key, Rank: idx + 1}, nil
}
