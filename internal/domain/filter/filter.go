// Package filter computes player visibility from the process-wide filter
// state. Visibility never mutates the board; it is a pure predicate with no
// memory of previous results.
package filter

import (
	"strings"

	"github.com/NicolasJancke/FantasyFootballCheatSheet/internal/domain/model"
)

// State is the current filter selection. The zero value hides nothing.
type State struct {
	// NameQuery is matched as a case-insensitive substring of the
	// player's display name. Empty matches everything.
	NameQuery string `json:"query"`

	// Position restricts to one position. Empty means no restriction.
	Position model.Position `json:"position"`
}

// Visible reports whether the player passes both the name and the position
// predicate. The two are independent: a position match never rescues a name
// miss and vice versa.
func Visible(p model.Player, s State) bool {
	return matchesName(p, s.NameQuery) && matchesPosition(p, s.Position)
}

// Apply filters players down to the visible subset, preserving order.
func Apply(players []model.Player, s State) []model.Player {
	out := make([]model.Player, 0, len(players))
	for _, p := range players {
		if Visible(p, s) {
			out = append(out, p)
		}
	}
	return out
}

func matchesName(p model.Player, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.DisplayName()), strings.ToLower(query))
}

func matchesPosition(p model.Player, pos model.Position) bool {
	return pos == "" || p.Position == pos
}
