package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"

	"github.com/NicolasJancke/FantasyFootballCheatSheet/pkg/metrics"
)

// PebbleStore implements Store on a local pebble database. Writes are
// synced: a successful Set survives a process crash.
type PebbleStore struct {
	mu     sync.RWMutex
	db     *pebble.DB
	closed bool

	writeOpts *pebble.WriteOptions
}

// PebbleOption applies a configuration option to the PebbleStore.
type PebbleOption func(*PebbleStore)

// WithUnsyncedWrites trades durability for write latency; used in tests.
func WithUnsyncedWrites() PebbleOption {
	return func(s *PebbleStore) {
		s.writeOpts = pebble.NoSync
	}
}

// NewPebbleStore opens (creating if needed) a pebble database at dir.
func NewPebbleStore(ctx context.Context, dir string, opts ...PebbleOption) (*PebbleStore, error) {
	s := &PebbleStore{
		writeOpts: pebble.Sync,
	}
	for _, opt := range opts {
		opt(s)
	}

	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrOpen, dir, err)
	}
	s.db = db
	return s, nil
}

// Get implements Store.Get. An absent key is (_, false, nil).
func (s *PebbleStore) Get(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStorageReadLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", false, ErrClosed
	}

	val, closer, err := s.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("pebble get %q: %w", key, err)
	}
	out := string(val)
	if err := closer.Close(); err != nil {
		return "", false, fmt.Errorf("pebble get close %q: %w", key, err)
	}
	return out, true, nil
}

// Set implements Store.Set.
func (s *PebbleStore) Set(ctx context.Context, key, value string) error {
	start := time.Now()
	defer func() {
		metrics.RecordStorageWriteLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}

	if err := s.db.Set([]byte(key), []byte(value), s.writeOpts); err != nil {
		metrics.RecordErrorByComponent("storage", "write_failed")
		return fmt.Errorf("pebble set %q: %w", key, err)
	}
	return nil
}

// Delete implements Store.Delete.
func (s *PebbleStore) Delete(ctx context.Context, key string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}

	if err := s.db.Delete([]byte(key), s.writeOpts); err != nil {
		metrics.RecordErrorByComponent("storage", "delete_failed")
		return fmt.Errorf("pebble delete %q: %w", key, err)
	}
	return nil
}

// Close implements Store.Close.
func (s *PebbleStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("pebble close: %w", err)
	}
	return nil
}
