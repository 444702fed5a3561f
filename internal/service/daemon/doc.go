// Package daemon wires the day-starter process together: configuration,
// alarm settings with default fallback, the notification sink, the
// session lock watcher and the scheduler loop.
package daemon
