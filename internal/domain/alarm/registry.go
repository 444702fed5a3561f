package alarm

import (
	"errors"

	"github.com/google/uuid"
)

// ErrUnknownEntry is returned when an identity does not match any entry.
var ErrUnknownEntry = errors.New("unknown alarm entry")

// Registry is the ordered collection of alarm entries.
//
// Display order equals firing-evaluation order and is insertion order,
// stable across edits. The registry performs no locking: all access is
// expected to run on the scheduler's single evaluation goroutine.
type Registry struct {
	entries []*Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends a new entry and returns it.
func (r *Registry) Add(label, timeOfDay string, enabled bool) *Entry {
	entry := NewEntry(label, timeOfDay, enabled)
	r.entries = append(r.entries, entry)

	return entry
}

// Prepend inserts a new entry at the head of the list and returns it.
func (r *Registry) Prepend(label, timeOfDay string, enabled bool) *Entry {
	entry := NewEntry(label, timeOfDay, enabled)
	r.entries = append([]*Entry{entry}, r.entries...)

	return entry
}

// Duplicate appends a copy of the identified entry with a fresh identity
// and the fired state reset.
func (r *Registry) Duplicate(id uuid.UUID) (*Entry, error) {
	source, _, err := r.find(id)
	if err != nil {
		return nil, err
	}

	return r.Add(source.Label, source.Time, source.Enabled), nil
}

// Remove deletes the identified entry, preserving the order of the rest.
func (r *Registry) Remove(id uuid.UUID) error {
	_, position, err := r.find(id)
	if err != nil {
		return err
	}

	r.entries = append(r.entries[:position], r.entries[position+1:]...)

	return nil
}

// Get returns the identified entry.
func (r *Registry) Get(id uuid.UUID) (*Entry, error) {
	entry, _, err := r.find(id)

	return entry, err
}

// Entries returns the entries in display order.
// The slice is a copy, the entries are not.
func (r *Registry) Entries() []*Entry {
	result := make([]*Entry, len(r.entries))
	copy(result, r.entries)

	return result
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// ClearFired resets the fired flag on every entry.
func (r *Registry) ClearFired() {
	for _, entry := range r.entries {
		entry.Fired = false
	}
}

// Snapshot returns value copies of all entries in display order for
// persistence. Fired state is included but is not meant to be stored.
func (r *Registry) Snapshot() []Entry {
	result := make([]Entry, 0, len(r.entries))
	for _, entry := range r.entries {
		result = append(result, *entry)
	}

	return result
}

// find locates an entry and its position by identity.
func (r *Registry) find(id uuid.UUID) (*Entry, int, error) {
	for position, entry := range r.entries {
		if entry.ID == id {
			return entry, position, nil
		}
	}

	return nil, 0, ErrUnknownEntry
}
