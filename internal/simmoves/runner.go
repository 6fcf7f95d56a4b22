package simmoves

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/NicolasJancke/FantasyFootballCheatSheet/internal/domain/model"
)

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

type tierResponse struct {
	Tier string `json:"tier"`
}

type playersResponse struct {
	Players []model.Player `json:"players"`
}

type tierView struct {
	Tier    string `json:"tier"`
	Players []struct {
		ID   string `json:"id"`
		Rank int    `json:"rank"`
	} `json:"players"`
}

type placement struct {
	Tier string `json:"tier"`
	Rank int    `json:"rank"`
}

// Run drives the service with synthetic traffic and verifies the board.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	start := time.Now()
	c := newClient(cfg.BaseURL, cfg.Timeout)
	stats := &Stats{}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("🎲 Using seed %d", seed)

	// Fresh board so verification is deterministic.
	if status, err := c.postJSON(ctx, "/reset", nil, nil); err != nil || status != http.StatusOK {
		return stats, fmt.Errorf("reset board: status %d, err %v", status, err)
	}

	tiers, err := createTiers(ctx, c, cfg.Tiers)
	if err != nil {
		return stats, err
	}
	stats.TiersCreated = len(tiers)
	log.Printf("📋 Created %d tiers", len(tiers))

	playerIDs, err := revealAll(ctx, c)
	if err != nil {
		return stats, err
	}
	stats.PlayersRevealed = len(playerIDs)
	if len(playerIDs) == 0 {
		return stats, fmt.Errorf("no players revealed; is the pool empty?")
	}
	log.Printf("👥 Revealed %d players", len(playerIDs))

	submitMoves(ctx, c, cfg, seed, tiers, playerIDs, stats)

	if err := verifyBoard(ctx, c); err != nil {
		return stats, fmt.Errorf("board verification: %w", err)
	}
	log.Printf("✅ Board verified: contiguous ranks, no duplicate placements")

	stats.Elapsed = time.Since(start)
	log.Printf(`📊 Simulation completed in %s:
   Applied:   %d
   Duplicate: %d
   Failed:    %d
`, stats.Elapsed.Round(time.Millisecond), stats.MovesApplied, stats.MovesDuplicate, stats.MovesFailed)
	return stats, nil
}

func createTiers(ctx context.Context, c *client, n int) ([]string, error) {
	tiers := make([]string, 0, n)
	for i := 0; i < n; i++ {
		var resp tierResponse
		status, err := c.postJSON(ctx, "/tiers", nil, &resp)
		if err != nil {
			return nil, fmt.Errorf("create tier: %w", err)
		}
		if status != http.StatusCreated {
			// A capped board is fine; use what exists.
			break
		}
		tiers = append(tiers, resp.Tier)
	}
	if len(tiers) == 0 {
		return nil, fmt.Errorf("no tiers created")
	}
	return tiers, nil
}

// revealAll pages through the unassigned pool until the cursor is exhausted.
func revealAll(ctx context.Context, c *client) ([]string, error) {
	var visible playersResponse
	if err := c.getJSON(ctx, "/players", &visible); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	ids := make([]string, 0, len(visible.Players))
	for _, p := range visible.Players {
		ids = append(ids, p.ID)
	}

	for {
		var batch playersResponse
		status, err := c.postJSON(ctx, "/players/reveal", nil, &batch)
		if err != nil {
			return nil, fmt.Errorf("reveal players: %w", err)
		}
		if status != http.StatusOK || len(batch.Players) == 0 {
			return ids, nil
		}
		for _, p := range batch.Players {
			ids = append(ids, p.ID)
		}
	}
}

// submitMoves pushes generated events through a worker pool. A slice of
// events is re-submitted verbatim to exercise the dedupe path.
func submitMoves(ctx context.Context, c *client, cfg *Config, seed int64, tiers, playerIDs []string, stats *Stats) {
	gen := newGenerator(seed, tiers)
	events := make([]model.MoveEvent, 0, cfg.Moves+int(float64(cfg.Moves)*cfg.ReplayRate))
	for i := 0; i < cfg.Moves; i++ {
		ev := gen.next(playerIDs)
		events = append(events, ev)
		if float64(i%100)/100.0 < cfg.ReplayRate {
			events = append(events, ev)
		}
	}

	log.Printf("📤 Submitting %d moves with %d workers...", len(events), cfg.Workers)

	var applied, duplicate, failed, submitted int64
	eventChan := make(chan model.MoveEvent, cfg.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ev := range eventChan {
				select {
				case <-ctx.Done():
					return
				default:
				}
				var ack ackResponse
				status, err := c.postJSON(ctx, "/moves", ev, &ack)
				atomic.AddInt64(&submitted, 1)
				switch {
				case err != nil || status >= http.StatusInternalServerError:
					atomic.AddInt64(&failed, 1)
				case status == http.StatusOK && ack.Duplicate:
					atomic.AddInt64(&duplicate, 1)
				case status == http.StatusOK:
					atomic.AddInt64(&applied, 1)
				default:
					atomic.AddInt64(&failed, 1)
				}
				if cfg.Verbose {
					log.Printf("move %s: %s -> %s[%d] (status %d)",
						ev.PlayerID, ev.FromTier, ev.ToTier, ev.ToIndex, status)
				}
			}
		}()
	}

	go func() {
		defer close(eventChan)
		for _, ev := range events {
			select {
			case <-ctx.Done():
				return
			case eventChan <- ev:
			}
		}
	}()

	wg.Wait()

	stats.MovesSubmitted = int(atomic.LoadInt64(&submitted))
	stats.MovesApplied = int(atomic.LoadInt64(&applied))
	stats.MovesDuplicate = int(atomic.LoadInt64(&duplicate))
	stats.MovesFailed = int(atomic.LoadInt64(&failed))
}

// verifyBoard checks the invariants the board promises: every placed
// player appears exactly once, and ranks within each tier run 1..N.
func verifyBoard(ctx context.Context, c *client) error {
	var board []tierView
	if err := c.getJSON(ctx, "/board", &board); err != nil {
		return err
	}

	seen := make(map[string]string)
	for _, tv := range board {
		for i, p := range tv.Players {
			if prev, ok := seen[p.ID]; ok {
				return fmt.Errorf("player %s appears in both %s and %s", p.ID, prev, tv.Tier)
			}
			seen[p.ID] = tv.Tier

			if tv.Tier == "unassigned" {
				continue
			}
			if p.Rank != i+1 {
				return fmt.Errorf("tier %s: player %s has rank %d at position %d", tv.Tier, p.ID, p.Rank, i)
			}

			// Cross-check the rank endpoint against the board view.
			var pl placement
			if err := c.getJSON(ctx, "/rank/"+p.ID, &pl); err != nil {
				return fmt.Errorf("rank lookup for %s: %w", p.ID, err)
			}
			if pl.Tier != tv.Tier || pl.Rank != p.Rank {
				return fmt.Errorf("rank mismatch for %s: board says %s/%d, lookup says %s/%d",
					p.ID, tv.Tier, p.Rank, pl.Tier, pl.Rank)
			}
		}
	}
	return nil
}
