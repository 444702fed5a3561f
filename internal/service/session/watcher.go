package session

import (
	"context"
	"errors"
)

// Event is a session lock-state transition.
type Event int

const (
	// Locked means the OS session was locked (screensaver activated).
	Locked Event = iota
	// Unlocked means the OS session was unlocked.
	Unlocked
)

// String returns a human-readable event name.
func (e Event) String() string {
	if e == Locked {
		return "locked"
	}

	return "unlocked"
}

// ErrUnavailable indicates that session lock notifications are not
// supported on this platform or the signal source cannot be reached.
// The pause-on-lock feature silently disables itself in that case.
var ErrUnavailable = errors.New("session lock notifications unavailable")

// Watcher delivers lock/unlock events for the current session.
// Events are produced on a background goroutine and must be re-dispatched
// by the consumer onto its own serialized context.
type Watcher interface {
	// Events returns the channel of lock-state transitions.
	// The channel is closed when the watcher shuts down.
	Events() <-chan Event
	// Close stops the watcher and releases its resources.
	Close() error
}

// NewWatcher connects to the platform signal source for the current
// session. It returns ErrUnavailable when the capability is absent.
func NewWatcher(ctx context.Context) (Watcher, error) {
	return newPlatformWatcher(ctx)
}
