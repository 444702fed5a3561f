// Package settings implements persistence for user settings.
//
// The FileRepository stores the ordered alarm list plus ringtone and
// pause-on-lock preferences as JSON on disk, accepts the legacy bare-list
// layout, and exposes a Repository interface that the daemon depends on.
package settings
