// Package session watches the OS session lock state.
//
// On Linux it subscribes to org.freedesktop.ScreenSaver ActiveChanged
// signals over D-Bus; other platforms report the capability absent via
// ErrUnavailable, and the pause-on-lock feature disables itself.
package session
