package alarm

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimeFormat is returned when a time string is not a valid
// 24-hour "HH:MM" value.
var ErrInvalidTimeFormat = errors.New("invalid time format, use HH:MM (24h)")

// Clock is a wall-clock time of day with minute precision.
type Clock struct {
	// Hour is in the range [0, 23].
	Hour int
	// Minute is in the range [0, 59].
	Minute int
}

// ParseClock decodes an "HH:MM" 24-hour string into a Clock.
// The string must contain exactly one ':' with numeric parts on both sides,
// hour in [0, 23] and minute in [0, 59]. Invalid input is rejected, never
// coerced.
func ParseClock(s string) (Clock, error) {
	trimmed := strings.TrimSpace(s)

	hourPart, minutePart, found := strings.Cut(trimmed, ":")
	if !found {
		return Clock{}, fmt.Errorf("%q has no ':' separator: %w", trimmed, ErrInvalidTimeFormat)
	}

	hour, ok := parseClockPart(hourPart)
	if !ok {
		return Clock{}, fmt.Errorf("%q: hour %q is not a number: %w", trimmed, hourPart, ErrInvalidTimeFormat)
	}

	minute, ok := parseClockPart(minutePart)
	if !ok {
		return Clock{}, fmt.Errorf("%q: minute %q is not a number: %w", trimmed, minutePart, ErrInvalidTimeFormat)
	}

	if hour > 23 {
		return Clock{}, fmt.Errorf("%q: hour must be 0-23: %w", trimmed, ErrInvalidTimeFormat)
	}

	if minute > 59 {
		return Clock{}, fmt.Errorf("%q: minute must be 0-59: %w", trimmed, ErrInvalidTimeFormat)
	}

	return Clock{Hour: hour, Minute: minute}, nil
}

// ClockOf extracts the time of day from a timestamp.
func ClockOf(t time.Time) Clock {
	return Clock{Hour: t.Hour(), Minute: t.Minute()}
}

// parseClockPart converts a clock component into a number.
// Unlike strconv.Atoi it rejects signs and whitespace, only digits qualify.
func parseClockPart(s string) (int, bool) {
	if s == "" {
		return 0, false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}

	value, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}

	return value, true
}

// String formats the clock back into zero-padded "HH:MM".
// It round-trips with ParseClock.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Target combines the clock with the date of now, seconds zeroed.
// The result is the moment the alarm should fire today.
func (c Clock) Target(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), c.Hour, c.Minute, 0, 0, now.Location())
}
