package app

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/NicolasJancke/FantasyFootballCheatSheet/pkg/logger"
)

func TestSaverCoalescesBursts(t *testing.T) {
	var saves atomic.Int32
	s := newSaver(30*time.Millisecond, func(ctx context.Context) {
		saves.Add(1)
	}, logger.Get().Named("saver"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	// A burst of mutations produces one trailing write.
	for i := 0; i < 10; i++ {
		s.Schedule()
		time.Sleep(2 * time.Millisecond)
	}
	time.Sleep(100 * time.Millisecond)

	if got := saves.Load(); got != 1 {
		t.Errorf("saves = %d, want 1 coalesced write", got)
	}

	// A second burst after quiescence writes again.
	s.Schedule()
	time.Sleep(100 * time.Millisecond)
	if got := saves.Load(); got != 2 {
		t.Errorf("saves = %d, want 2", got)
	}
}

func TestSaverFlushesOnShutdown(t *testing.T) {
	var saves atomic.Int32
	s := newSaver(time.Hour, func(ctx context.Context) {
		saves.Add(1)
	}, logger.Get().Named("saver"))

	ctx := context.Background()
	go s.Run(ctx)

	s.Schedule()
	// Give the run loop a moment to arm the timer.
	time.Sleep(20 * time.Millisecond)

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
	if got := saves.Load(); got != 1 {
		t.Errorf("saves = %d, want pending write flushed on shutdown", got)
	}
}

func TestSaverFlushesUnconsumedKick(t *testing.T) {
	// Shutdown immediately after Schedule, before the run loop had a chance
	// to consume the kick. The buffered kick must still be flushed no matter
	// which select branch wins. Repeat to exercise both orderings.
	for i := 0; i < 25; i++ {
		var saves atomic.Int32
		s := newSaver(time.Hour, func(ctx context.Context) {
			saves.Add(1)
		}, logger.Get().Named("saver"))

		go s.Run(context.Background())
		s.Schedule()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		if err := s.Shutdown(shutdownCtx); err != nil {
			cancel()
			t.Fatalf("run %d: shutdown failed: %v", i, err)
		}
		cancel()
		if got := saves.Load(); got != 1 {
			t.Fatalf("run %d: saves = %d, want the scheduled write flushed", i, got)
		}
	}
}

func TestSaverIdleShutdown(t *testing.T) {
	var saves atomic.Int32
	s := newSaver(10*time.Millisecond, func(ctx context.Context) {
		saves.Add(1)
	}, logger.Get().Named("saver"))

	go s.Run(context.Background())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
	if got := saves.Load(); got != 0 {
		t.Errorf("saves = %d, want none without scheduled work", got)
	}
}
