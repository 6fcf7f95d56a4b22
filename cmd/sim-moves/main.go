// Command sim-moves drives a running cheat sheet service with synthetic
// drag-and-drop traffic and verifies the board invariants afterwards.
package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/NicolasJancke/FantasyFootballCheatSheet/internal/simmoves"
)

// Default configuration constants.
const (
	defaultMoves      = 1000
	defaultTiers      = 6
	defaultReplayRate = 0.05
	defaultTimeout    = 10 * time.Second
	defaultRunTimeout = 5 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:8080", "Base URL of the service")
		moves      = flag.Int("moves", defaultMoves, "Number of moves to generate and submit")
		tiers      = flag.Int("tiers", defaultTiers, "Number of tiers to create")
		workers    = flag.Int("workers", runtime.NumCPU()*2, "Number of concurrent workers")
		replayRate = flag.Float64("replay", defaultReplayRate, "Fraction of moves replayed to exercise dedupe")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		seed       = flag.Int64("seed", 0, "Generator seed (0 picks a time-based seed)")
		verbose    = flag.Bool("verbose", false, "Enable per-move logging")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	cfg := &simmoves.Config{
		BaseURL:    *baseURL,
		Moves:      *moves,
		Tiers:      *tiers,
		Workers:    *workers,
		ReplayRate: *replayRate,
		Timeout:    *timeout,
		Seed:       *seed,
		Verbose:    *verbose,
	}

	if _, err := simmoves.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("Simulation failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
