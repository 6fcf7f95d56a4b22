// Package source fetches the raw player pool from the upstream provider.
// The pool is fetched once at startup; a failure yields an empty pool so the
// rest of the service keeps working.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/NicolasJancke/FantasyFootballCheatSheet/internal/domain/model"
	"github.com/NicolasJancke/FantasyFootballCheatSheet/pkg/logger"
)

// Default client configuration constants.
const (
	defaultBaseURL = "https://api.sleeper.app/v1"
	defaultTimeout = 30 * time.Second
)

// Record is the upstream player shape; only the fields the cheat sheet
// needs are decoded.
type Record struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Position   string `json:"position"`
	Team       string `json:"team"`
	SearchRank int    `json:"search_rank"`
}

// Client fetches the full player mapping from the provider.
type Client struct {
	baseURL string
	http    *http.Client
	log     logger.Logger
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithBaseURL overrides the provider base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithTimeout bounds the fetch round trip.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a provider client with default configuration.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: defaultTimeout},
		log:     logger.Get().Named("source"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns every fantasy-relevant player keyed by provider id. The
// returned map is empty, never nil, on upstream failure; the error lets the
// caller log the condition.
func (c *Client) Fetch(ctx context.Context) (map[string]model.Player, error) {
	url := c.baseURL + "/players/nfl"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return map[string]model.Player{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return map[string]model.Player{}, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return map[string]model.Player{}, fmt.Errorf("%w: unexpected status %d", ErrFetch, resp.StatusCode)
	}

	var raw map[string]Record
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return map[string]model.Player{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	players := make(map[string]model.Player, len(raw))
	for id, rec := range raw {
		pos, ok := model.ParsePosition(rec.Position)
		if !ok {
			continue
		}
		players[id] = model.Player{
			ID:         id,
			FirstName:  rec.FirstName,
			LastName:   rec.LastName,
			Position:   pos,
			Team:       rec.Team,
			SearchRank: rec.SearchRank,
		}
	}

	c.log.Info(ctx, "player pool fetched",
		logger.Int("total", len(raw)),
		logger.Int("kept", len(players)),
	)
	return players, nil
}

// SortPool orders a fetched pool into the natural cheat sheet order:
// ascending search rank (unranked last), ties by display name, then id for
// full determinism.
func SortPool(pool map[string]model.Player) []model.Player {
	out := make([]model.Player, 0, len(pool))
	for _, p := range pool {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := rankOrLast(out[i].SearchRank), rankOrLast(out[j].SearchRank)
		if ri != rj {
			return ri < rj
		}
		if ni, nj := out[i].DisplayName(), out[j].DisplayName(); ni != nj {
			return ni < nj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func rankOrLast(r int) int {
	if r <= 0 {
		return int(^uint(0) >> 1) // unranked players sort last
	}
	return r
}
