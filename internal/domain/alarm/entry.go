package alarm

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Entry is one configured alarm.
type Entry struct {
	// ID is a stable identity that survives edits and reorders.
	ID uuid.UUID
	// Label is the user-defined display name, may be empty.
	Label string
	// Time is the "HH:MM" time of day. An empty string makes the entry
	// non-schedulable regardless of Enabled.
	Time string
	// Enabled controls whether the entry is evaluated for firing.
	Enabled bool
	// Fired marks that the entry already triggered (or was skipped as
	// missed) for the current armed session. It is transient and never
	// persisted.
	Fired bool
}

// NewEntry creates an entry with a fresh identity.
func NewEntry(label, timeOfDay string, enabled bool) *Entry {
	return &Entry{
		ID:      uuid.New(),
		Label:   label,
		Time:    timeOfDay,
		Enabled: enabled,
	}
}

// Clone returns a copy of the entry to avoid leaking internal references.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}

	cloned := *e

	return &cloned
}

// Clock parses the entry's time of day.
func (e *Entry) Clock() (Clock, error) {
	return ParseClock(e.Time)
}

// HasTime reports whether the entry carries a non-empty time string.
func (e *Entry) HasTime() bool {
	return strings.TrimSpace(e.Time) != ""
}

// DisplayLabel returns the label or a positional fallback name.
// Position is zero-based.
func (e *Entry) DisplayLabel(position int) string {
	if label := strings.TrimSpace(e.Label); label != "" {
		return label
	}

	return fmt.Sprintf("Alarm %d", position+1)
}
