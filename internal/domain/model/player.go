// Package model contains domain models passed between layers.
package model

import "strings"

// Position is a fantasy-relevant player position.
type Position string

// Positions tracked on the cheat sheet. Anything else from the upstream
// pool (kickers, defenses, inactive slots) is filtered out at fetch time.
const (
	QB Position = "QB"
	RB Position = "RB"
	WR Position = "WR"
	TE Position = "TE"
)

// ParsePosition normalizes a position string. ok is false for positions the
// cheat sheet does not track.
func ParsePosition(s string) (Position, bool) {
	switch Position(strings.ToUpper(strings.TrimSpace(s))) {
	case QB:
		return QB, true
	case RB:
		return RB, true
	case WR:
		return WR, true
	case TE:
		return TE, true
	}
	return "", false
}

// Player is an immutable candidate record created once at fetch time.
type Player struct {
	ID        string   `json:"id"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Position  Position `json:"position"`
	Team      string   `json:"team,omitempty"`
	// SearchRank orders the pool before any user ranking exists.
	// Lower is better; 0 means the source supplied no rank.
	SearchRank int `json:"search_rank"`
}

// DisplayName joins first and last name for rendering and name filtering.
func (p Player) DisplayName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}
