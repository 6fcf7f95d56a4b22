package app

import (
	"time"

	"github.com/NicolasJancke/FantasyFootballCheatSheet/internal/adapters/source"
	"github.com/NicolasJancke/FantasyFootballCheatSheet/internal/adapters/storage"
	"github.com/NicolasJancke/FantasyFootballCheatSheet/internal/domain/model"
	"github.com/NicolasJancke/FantasyFootballCheatSheet/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithDataDir sets the pebble data directory. Empty keeps the board in
// memory only.
func WithDataDir(dir string) Option {
	return func(s *Service) {
		s.dataDir = dir
	}
}

// WithStore injects a storage backend, overriding WithDataDir.
func WithStore(st storage.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// WithSourceBaseURL overrides the player provider base URL.
func WithSourceBaseURL(url string) Option {
	return func(s *Service) {
		s.sourceURL = url
	}
}

// WithSourceClient injects a provider client.
func WithSourceClient(c *source.Client) Option {
	return func(s *Service) {
		if c != nil {
			s.client = c
		}
	}
}

// WithPlayerPool injects a pre-fetched pool, skipping the startup fetch.
func WithPlayerPool(pool map[string]model.Player) Option {
	return func(s *Service) {
		if pool != nil {
			s.pool = pool
		}
	}
}

// WithFetchTimeout bounds the startup pool fetch.
func WithFetchTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// WithSaveDebounce sets the trailing-edge delay before persisted writes.
func WithSaveDebounce(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.saveDebounce = d
		}
	}
}

// WithChunkSize sets how many players each reveal materializes.
func WithChunkSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.chunkSize = n
		}
	}
}

// WithDedupeSize bounds the move-event dedupe cache.
func WithDedupeSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.dedupeSize = n
		}
	}
}

// WithMaxTiers caps the number of user tiers.
func WithMaxTiers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxTiers = n
		}
	}
}
