// Package notifier implements the notification sink consumed by the
// scheduler: a desktop popup plus a looping ringtone with a tone fallback.
package notifier
