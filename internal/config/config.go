// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataDir is the pebble directory for the persisted board. Empty keeps
	// the board in memory only.
	DataDir string `koanf:"data_dir"`

	// SourceBaseURL overrides the player provider API base URL.
	SourceBaseURL string `koanf:"source_base_url"`

	// FetchTimeoutMS bounds the startup player pool fetch.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// SaveDebounceMS is the trailing-edge delay before board writes.
	SaveDebounceMS int `koanf:"save_debounce_ms"`

	// RevealChunkSize sets how many unassigned players each reveal adds.
	RevealChunkSize int `koanf:"reveal_chunk_size"`

	// DedupeSize bounds the move-event deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxTierCount caps the number of user-created tiers.
	MaxTierCount int `koanf:"max_tier_count"`
}

// New creates a Config with the service defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":8080",
		DataDir:         "data",
		SourceBaseURL:   "",
		FetchTimeoutMS:  30_000,
		SaveDebounceMS:  1_500,
		RevealChunkSize: 30,
		DedupeSize:      10_000,
		MaxTierCount:    10,
	}
}
