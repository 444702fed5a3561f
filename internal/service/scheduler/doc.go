// Package scheduler implements the alarm firing loop.
//
// The Scheduler owns the entry registry and the armed/paused flags, and
// exposes arm/disarm/snooze/lock/unlock/modify as its only mutators. Every
// operation is marshaled onto the single goroutine running the tick loop,
// so scheduler state needs no locks. Each tick compares wall-clock time
// against the entries' targets inside a small tolerance window, notifies
// the sink for entries that hit the window, silently skips entries whose
// window was missed while running, and, after a pause, replays entries that
// became due during the pause in chronological target order.
package scheduler
