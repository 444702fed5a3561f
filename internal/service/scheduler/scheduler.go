package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	domain "github.com/oshokin/day-starter/internal/domain/alarm"
	"github.com/oshokin/day-starter/internal/logger"
)

// Sink is the notification contract consumed by the scheduler.
// Notify must not block the tick loop; StopAll must be idempotent.
type Sink interface {
	Notify(ctx context.Context, label string, firedAt time.Time)
	StopAll()
}

const (
	// DefaultTickInterval is the firing-evaluation period.
	DefaultTickInterval = time.Second

	// SnoozeOffset is the fixed delay applied by Snooze.
	SnoozeOffset = 5 * time.Minute

	// The firing window tolerates tick jitter around the one-second
	// polling granularity: an entry fires when now is within
	// [target-1s, target+3s]. Beyond the window the entry counts as
	// missed and is skipped silently unless the scheduler is paused.
	fireWindowBefore = time.Second
	fireWindowAfter  = 3 * time.Second

	// commandBuffer smooths bursts of operations between ticks.
	commandBuffer = 16
)

// ErrNoSchedulableAlarms is returned by StartAll when no enabled entry
// carries a non-empty valid time.
var ErrNoSchedulableAlarms = errors.New("no enabled alarm with a valid time")

// Config controls scheduler behavior.
type Config struct {
	// TickInterval overrides the evaluation period, defaults to
	// DefaultTickInterval.
	TickInterval time.Duration
	// PauseOnLock enables the pause/resume reaction to session lock
	// events. When false, lock and unlock signals are no-ops.
	PauseOnLock bool
	// Now overrides the wall-clock source, defaults to time.Now.
	Now func() time.Time
}

// Scheduler owns the alarm registry and the armed/paused state.
//
// All mutation happens on the single goroutine running Run: public
// operations and session signals are marshaled onto it via a command
// channel, so no state here needs locking.
type Scheduler struct {
	registry     *domain.Registry
	sink         Sink
	tickInterval time.Duration
	pauseOnLock  bool
	now          func() time.Time

	// armed enables firing evaluation.
	armed bool
	// paused suspends firing while the session is locked; unfired due
	// entries are replayed on resume.
	paused bool

	commands chan command
}

// command is one operation to execute on the scheduler goroutine.
type command struct {
	apply func(ctx context.Context, now time.Time) error
	reply chan error
}

// New creates a scheduler that owns the provided registry.
func New(registry *domain.Registry, sink Sink, cfg Config) *Scheduler {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Scheduler{
		registry:     registry,
		sink:         sink,
		tickInterval: cfg.TickInterval,
		pauseOnLock:  cfg.PauseOnLock,
		now:          cfg.Now,
		commands:     make(chan command, commandBuffer),
	}
}

// startAll arms the scheduler for the rest of the day.
//
// Validation runs before any mutation: a malformed time on an enabled entry
// aborts arming with the parse error, and an empty schedulable set reports
// ErrNoSchedulableAlarms, both leaving armed/paused untouched. On success
// all fired flags are cleared and entries whose time already elapsed today
// are pre-marked fired so they stay silent until the next arm.
func (s *Scheduler) startAll(ctx context.Context, now time.Time) error {
	type armTarget struct {
		entry  *domain.Entry
		target time.Time
	}

	var targets []armTarget

	for _, entry := range s.registry.Entries() {
		if !entry.Enabled || !entry.HasTime() {
			continue
		}

		clock, err := entry.Clock()
		if err != nil {
			return fmt.Errorf("cannot arm: %w", err)
		}

		targets = append(targets, armTarget{entry: entry, target: clock.Target(now)})
	}

	if len(targets) == 0 {
		return ErrNoSchedulableAlarms
	}

	s.registry.ClearFired()

	for _, item := range targets {
		if !item.target.After(now) {
			item.entry.Fired = true
		}
	}

	s.armed = true

	logger.InfoKV(ctx, "Armed for today", "at", now.Format("15:04:05"), "schedulable", len(targets))

	return nil
}

// stopAll disarms the scheduler and silences any in-progress notification.
// Fired flags are retained.
func (s *Scheduler) stopAll(ctx context.Context) {
	s.armed = false
	s.sink.StopAll()

	logger.Info(ctx, "Not armed")
}

// evaluate is one tick of the firing loop.
func (s *Scheduler) evaluate(ctx context.Context, now time.Time) {
	s.logCountdowns(ctx, now)

	if !s.armed || (s.paused && s.pauseOnLock) {
		return
	}

	for position, entry := range s.registry.Entries() {
		if entry.Fired || !entry.Enabled || !entry.HasTime() {
			continue
		}

		// One malformed entry must not block the rest of the tick.
		clock, err := entry.Clock()
		if err != nil {
			continue
		}

		delta := now.Sub(clock.Target(now))

		switch {
		case delta < -fireWindowBefore:
			// Still in the future.
		case delta <= fireWindowAfter:
			s.fire(ctx, entry, position, now)
		default:
			// Window already passed while running: skip silently.
			entry.Fired = true

			logger.InfoKV(ctx, "Alarm missed, skipped",
				"label", entry.DisplayLabel(position), "target", entry.Time)
		}
	}
}

// fire notifies for the entry and marks it fired.
func (s *Scheduler) fire(ctx context.Context, entry *domain.Entry, position int, firedAt time.Time) {
	entry.Fired = true

	label := entry.DisplayLabel(position)
	s.sink.Notify(ctx, label, firedAt)

	logger.InfoKV(ctx, "Alarm fired", "label", label, "target", entry.Time)
}

// snooze rewrites the entry's time to now plus the fixed offset and
// re-arms that single entry. Armed state is unchanged.
func (s *Scheduler) snooze(ctx context.Context, now time.Time, id uuid.UUID) error {
	entry, err := s.registry.Get(id)
	if err != nil {
		return err
	}

	s.sink.StopAll()

	entry.Time = domain.ClockOf(now.Add(SnoozeOffset)).String()
	entry.Fired = false

	logger.InfoKV(ctx, "Alarm snoozed", "label", entry.Label, "until", entry.Time)

	return nil
}

// onLock suspends firing and silences any ringing alarm. Already-fired
// entries stay fired; the popup, if any, is left to the user.
func (s *Scheduler) onLock(ctx context.Context) {
	if !s.pauseOnLock {
		return
	}

	s.paused = true
	s.sink.StopAll()

	logger.Info(ctx, "Paused, session locked")
}

// onUnlock resumes firing and replays every alarm that became due during
// the pause window in chronological target order, not registry order.
func (s *Scheduler) onUnlock(ctx context.Context, now time.Time) {
	if !s.pauseOnLock {
		return
	}

	s.paused = false

	logger.Info(ctx, "Resumed, session unlocked")

	if !s.armed {
		return
	}

	type dueEntry struct {
		entry    *domain.Entry
		position int
		target   time.Time
	}

	var due []dueEntry

	for position, entry := range s.registry.Entries() {
		if entry.Fired || !entry.Enabled || !entry.HasTime() {
			continue
		}

		clock, err := entry.Clock()
		if err != nil {
			continue
		}

		if target := clock.Target(now); !target.After(now) {
			due = append(due, dueEntry{entry: entry, position: position, target: target})
		}
	}

	// Stable sort keeps registry order for entries sharing a target time.
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].target.Before(due[j].target)
	})

	for _, item := range due {
		s.fire(ctx, item.entry, item.position, now)
	}
}
