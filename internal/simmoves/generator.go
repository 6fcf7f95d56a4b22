package simmoves

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/NicolasJancke/FantasyFootballCheatSheet/internal/domain/model"
)

// generator produces randomized move events over a known player pool.
type generator struct {
	rng   *rand.Rand
	tiers []string
	// owner tracks where the generator last sent each player so from_tier
	// matches what the service expects most of the time.
	owner map[string]string
}

func newGenerator(seed int64, tiers []string) *generator {
	return &generator{
		rng:   rand.New(rand.NewSource(seed)),
		tiers: tiers,
		owner: make(map[string]string),
	}
}

// next picks a random player and destination tier. Roughly one in ten
// events carries a stale from_tier to exercise source-tier reconciliation.
func (g *generator) next(playerIDs []string) model.MoveEvent {
	playerID := playerIDs[g.rng.Intn(len(playerIDs))]
	toTier := g.tiers[g.rng.Intn(len(g.tiers))]

	fromTier, ok := g.owner[playerID]
	if !ok {
		fromTier = "unassigned"
	}
	if g.rng.Intn(10) == 0 {
		fromTier = g.tiers[g.rng.Intn(len(g.tiers))]
	}
	g.owner[playerID] = toTier

	return model.MoveEvent{
		EventID:  uuid.NewString(),
		PlayerID: playerID,
		FromTier: fromTier,
		ToTier:   toTier,
		ToIndex:  g.rng.Intn(8),
	}
}
