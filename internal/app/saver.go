package app

import (
	"context"
	"time"

	"github.com/NicolasJancke/FantasyFootballCheatSheet/pkg/logger"
	"github.com/NicolasJancke/FantasyFootballCheatSheet/pkg/metrics"
)

// defaultSaveDebounce is the trailing-edge delay between the last mutation
// and the actual storage write.
const defaultSaveDebounce = 1500 * time.Millisecond

// saver coalesces bursts of mutations into single storage writes. Only one
// pending write exists at a time; each Schedule resets the timer instead of
// stacking another write (last-write-wins, not a queue).
type saver struct {
	delay time.Duration
	save  func(ctx context.Context)

	kick chan struct{}
	stop chan struct{}
	done chan struct{}

	log logger.Logger
}

func newSaver(delay time.Duration, save func(ctx context.Context), log logger.Logger) *saver {
	if delay <= 0 {
		delay = defaultSaveDebounce
	}
	return &saver{
		delay: delay,
		save:  save,
		kick:  make(chan struct{}, 1),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
		log:   log,
	}
}

// Schedule requests a save after the debounce delay. Non-blocking; calling
// while a write is already pending just pushes the deadline out.
func (s *saver) Schedule() {
	select {
	case s.kick <- struct{}{}:
	default:
		// A kick is already buffered; the run loop will reset its timer.
		metrics.RecordSaveDebounceHit()
	}
}

// Run drains schedule requests until Shutdown. A pending write is flushed
// on shutdown so a quit right after a drag does not lose the move.
func (s *saver) Run(ctx context.Context) {
	defer close(s.done)

	timer := time.NewTimer(s.delay)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			s.flush(ctx, pending)
			return
		case <-s.stop:
			s.flush(ctx, pending)
			return
		case <-s.kick:
			if pending {
				if !timer.Stop() {
					<-timer.C
				}
				metrics.RecordSaveDebounceHit()
			}
			timer.Reset(s.delay)
			pending = true
		case <-timer.C:
			pending = false
			s.save(ctx)
		}
	}
}

// flush runs the final write on shutdown. A kick buffered by Schedule but
// never consumed by the loop still counts as pending work; without the drain
// a save scheduled right before Shutdown could race the stop channel and be
// lost.
func (s *saver) flush(ctx context.Context, pending bool) {
	select {
	case <-s.kick:
		pending = true
	default:
	}
	if pending {
		s.save(context.WithoutCancel(ctx))
	}
}

// Shutdown stops the run loop, flushing any pending write first.
func (s *saver) Shutdown(ctx context.Context) error {
	close(s.stop)
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		s.log.Warn(ctx, "saver shutdown timed out")
		return ctx.Err()
	}
}
