package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"

	domain "github.com/oshokin/day-starter/internal/domain/alarm"
	"github.com/oshokin/day-starter/internal/logger"
)

// noCountdown is shown for entries with nothing to count down to:
// fired, disabled, empty time or a target already in the past.
const noCountdown = "—"

// malformedCountdown is shown for entries whose time does not parse.
const malformedCountdown = "ERR"

// Countdown is the T-minus view of one entry.
type Countdown struct {
	// Position is the zero-based display position.
	Position int
	// Label is the display label, with the positional fallback applied.
	Label string
	// Remaining is the formatted time to target.
	Remaining string
}

// Countdowns returns the T-minus view of every entry, armed or not.
func (s *Scheduler) Countdowns(ctx context.Context) ([]Countdown, error) {
	var result []Countdown

	err := s.do(ctx, func(_ context.Context, now time.Time) error {
		result = s.countdowns(now)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// countdowns computes the T-minus view at the given moment.
func (s *Scheduler) countdowns(now time.Time) []Countdown {
	entries := s.registry.Entries()
	result := make([]Countdown, 0, len(entries))

	for position, entry := range entries {
		result = append(result, Countdown{
			Position:  position,
			Label:     entry.DisplayLabel(position),
			Remaining: countdownFor(entry, now),
		})
	}

	return result
}

// countdownFor formats the remaining time for one entry.
func countdownFor(entry *domain.Entry, now time.Time) string {
	if !entry.HasTime() {
		return noCountdown
	}

	clock, err := entry.Clock()
	if err != nil {
		return malformedCountdown
	}

	if entry.Fired || !entry.Enabled {
		return noCountdown
	}

	return FormatTMinus(clock.Target(now).Sub(now))
}

// FormatTMinus renders a duration as "MM:SS", or "HH:MM:SS" from one hour
// up. Elapsed targets render as the no-countdown dash.
func FormatTMinus(d time.Duration) string {
	total := int(d.Seconds())
	if total < 0 {
		return noCountdown
	}

	hours := total / 3600
	minutes := total % 3600 / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}

	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// logCountdowns emits the per-tick T-minus line at debug level.
func (s *Scheduler) logCountdowns(ctx context.Context, now time.Time) {
	if !logger.Level().Enabled(zapcore.DebugLevel) {
		return
	}

	parts := make([]string, 0, s.registry.Len())
	for _, item := range s.countdowns(now) {
		parts = append(parts, fmt.Sprintf("%s %s", item.Label, item.Remaining))
	}

	logger.DebugKV(ctx, "T-minus", "entries", strings.Join(parts, "; "))
}
