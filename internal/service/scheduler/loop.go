package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/oshokin/day-starter/internal/domain/alarm"
	"github.com/oshokin/day-starter/internal/logger"
)

// Run executes the scheduler loop until the context is canceled.
// Ticks, operations and session signals all run here, one at a time.
func (s *Scheduler) Run(ctx context.Context) error {
	ctx = logger.WithName(ctx, "scheduler")

	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	logger.InfoKV(ctx, "Scheduler loop started",
		"tick_interval", s.tickInterval.String(), "pause_on_lock", s.pauseOnLock)

	for {
		select {
		case <-ctx.Done():
			s.sink.StopAll()
			logger.Info(ctx, "Scheduler loop stopped")

			return nil
		case cmd := <-s.commands:
			err := cmd.apply(ctx, s.now())
			if cmd.reply != nil {
				cmd.reply <- err
			}
		case <-ticker.C:
			s.evaluate(ctx, s.now())
		}
	}
}

// do marshals an operation onto the scheduler goroutine and waits for its
// result. It fails fast when the caller's context ends first.
func (s *Scheduler) do(ctx context.Context, apply func(ctx context.Context, now time.Time) error) error {
	reply := make(chan error, 1)

	select {
	case s.commands <- command{apply: apply, reply: reply}:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// StartAll arms the scheduler for today.
func (s *Scheduler) StartAll(ctx context.Context) error {
	return s.do(ctx, func(ctx context.Context, now time.Time) error {
		return s.startAll(ctx, now)
	})
}

// StopAll disarms the scheduler and stops any in-progress notification audio.
func (s *Scheduler) StopAll(ctx context.Context) error {
	return s.do(ctx, func(ctx context.Context, _ time.Time) error {
		s.stopAll(ctx)

		return nil
	})
}

// Snooze pushes the identified entry five minutes into the future and
// clears its fired flag so it rings again.
func (s *Scheduler) Snooze(ctx context.Context, id uuid.UUID) error {
	return s.do(ctx, func(ctx context.Context, now time.Time) error {
		return s.snooze(ctx, now, id)
	})
}

// OnLock applies a session lock signal. A no-op unless pause-on-lock is enabled.
func (s *Scheduler) OnLock(ctx context.Context) error {
	return s.do(ctx, func(ctx context.Context, _ time.Time) error {
		s.onLock(ctx)

		return nil
	})
}

// OnUnlock applies a session unlock signal, replaying alarms that became
// due during the pause. A no-op unless pause-on-lock is enabled.
func (s *Scheduler) OnUnlock(ctx context.Context) error {
	return s.do(ctx, func(ctx context.Context, now time.Time) error {
		s.onUnlock(ctx, now)

		return nil
	})
}

// Modify runs an arbitrary registry mutation on the scheduler goroutine.
// This is the entry point for external editors: entries may be added,
// edited or removed at any time, including while armed, and the next tick
// simply evaluates the new shape.
func (s *Scheduler) Modify(ctx context.Context, mutate func(registry *domain.Registry) error) error {
	return s.do(ctx, func(_ context.Context, _ time.Time) error {
		return mutate(s.registry)
	})
}

// Snapshot returns value copies of all entries in display order.
func (s *Scheduler) Snapshot(ctx context.Context) ([]domain.Entry, error) {
	var result []domain.Entry

	err := s.do(ctx, func(_ context.Context, _ time.Time) error {
		result = s.registry.Snapshot()

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// State is a point-in-time view of the scheduler flags.
type State struct {
	// Armed reports whether firing evaluation is active.
	Armed bool
	// Paused reports whether firing is suspended by a session lock.
	Paused bool
}

// CurrentState returns the scheduler flags.
func (s *Scheduler) CurrentState(ctx context.Context) (State, error) {
	var result State

	err := s.do(ctx, func(_ context.Context, _ time.Time) error {
		result = State{Armed: s.armed, Paused: s.paused}

		return nil
	})
	if err != nil {
		return State{}, err
	}

	return result, nil
}
