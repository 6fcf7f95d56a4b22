// Package simmoves drives a running cheat sheet service with synthetic
// drag-and-drop traffic and verifies the resulting board.
package simmoves

import "time"

// Config controls a simulation run.
type Config struct {
	// BaseURL of the running service, e.g. http://localhost:8080.
	BaseURL string

	// Tiers to create before moving players.
	Tiers int

	// Moves to submit, including a fraction of deliberate replays.
	Moves int

	// Workers submitting moves concurrently.
	Workers int

	// ReplayRate is the fraction of moves re-submitted under the same
	// event id to exercise dedupe, in [0,1].
	ReplayRate float64

	// Timeout per HTTP request.
	Timeout time.Duration

	// Seed for the move generator; zero picks a time-based seed.
	Seed int64

	// Verbose enables per-move logging.
	Verbose bool
}

// Stats summarizes a simulation run.
type Stats struct {
	TiersCreated    int
	PlayersRevealed int
	MovesSubmitted  int
	MovesApplied    int
	MovesDuplicate  int
	MovesFailed     int
	Elapsed         time.Duration
}
