package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/day-starter/internal/domain/alarm"
)

// startLoop runs the scheduler goroutine with ticks effectively disabled so
// only marshaled commands execute.
func startLoop(t *testing.T, s *Scheduler) context.Context {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)

		_ = s.Run(ctx)
	}()

	t.Cleanup(func() {
		cancel()
		<-done
	})

	return ctx
}

// TestPublicAPI_RunsOnSchedulerGoroutine exercises every marshaled operation
// against a live loop.
func TestPublicAPI_RunsOnSchedulerGoroutine(t *testing.T) {
	t.Parallel()

	fixed := at(8, 0, 0)
	s, _, sink := newTestScheduler(t, Config{
		TickInterval: time.Hour,
		PauseOnLock:  true,
		Now:          func() time.Time { return fixed },
	})
	ctx := startLoop(t, s)

	// Registry mutations flow through Modify.
	var id uuid.UUID
	require.NoError(t, s.Modify(ctx, func(registry *domain.Registry) error {
		entry := registry.Add("Morning", "09:30", true)
		id = entry.ID

		return nil
	}))

	require.ErrorIs(t, s.Modify(ctx, func(registry *domain.Registry) error {
		return registry.Remove(domain.NewEntry("ghost", "", false).ID)
	}), domain.ErrUnknownEntry)

	require.NoError(t, s.StartAll(ctx))

	state, err := s.CurrentState(ctx)
	require.NoError(t, err)
	require.True(t, state.Armed)
	require.False(t, state.Paused)

	require.NoError(t, s.OnLock(ctx))

	state, err = s.CurrentState(ctx)
	require.NoError(t, err)
	require.True(t, state.Paused)

	require.NoError(t, s.OnUnlock(ctx))

	require.NoError(t, s.Snooze(ctx, id))

	snapshot, err := s.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot, 1)
	require.Equal(t, "08:05", snapshot[0].Time)

	countdowns, err := s.Countdowns(ctx)
	require.NoError(t, err)
	require.Len(t, countdowns, 1)
	require.Equal(t, "Morning", countdowns[0].Label)
	require.Equal(t, "05:00", countdowns[0].Remaining)

	require.NoError(t, s.StopAll(ctx))
	require.Empty(t, sink.labels())
}

// TestDo_FailsFastOnCanceledContext covers the marshaling guard.
func TestDo_FailsFastOnCanceledContext(t *testing.T) {
	t.Parallel()

	s, _, _ := newTestScheduler(t, Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// No loop is running, the canceled context unblocks the caller.
	require.ErrorIs(t, s.StartAll(ctx), context.Canceled)
}
