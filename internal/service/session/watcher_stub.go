//go:build !linux

package session

import "context"

// newPlatformWatcher reports the capability absent on platforms without a
// supported session signal source.
func newPlatformWatcher(_ context.Context) (Watcher, error) {
	return nil, ErrUnavailable
}
