// Package sound provides the looping ringtone player behind alarm
// notifications.
//
// Playback is reduced to two operations, Play and Stop, that are safe to
// call at any time. File playback shells out to the platform audio tool and
// degrades to a generated tone when no file is configured or playable.
package sound
