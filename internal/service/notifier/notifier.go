package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/oshokin/day-starter/internal/logger"
	"github.com/oshokin/day-starter/internal/service/sound"
)

// Desktop presents alarms as a desktop notification with a looping ringtone.
// Notify is fire-and-forget so the caller's tick loop never waits on
// rendering or playback.
type Desktop struct {
	// player loops the ringtone until StopAll.
	player sound.Player
	// ringtone is the configured sound file path, empty means the
	// generated tone fallback.
	ringtone string
	// popup shows the desktop notification, replaceable in tests.
	popup func(title, message string) error
}

// NewDesktop creates a sink that plays the provided ringtone on each alarm.
func NewDesktop(player sound.Player, ringtone string) *Desktop {
	return &Desktop{
		player:   player,
		ringtone: ringtone,
		popup:    func(title, message string) error { return beeep.Notify(title, message, "") },
	}
}

// Notify begins an alarm presentation: the ringtone loop starts immediately
// and the popup is dispatched on its own goroutine.
func (d *Desktop) Notify(ctx context.Context, label string, firedAt time.Time) {
	d.player.Play(ctx, d.ringtone)

	title := fmt.Sprintf("⏰ %s", label)
	message := firedAt.Format("15:04")

	go func() {
		if err := d.popup(title, message); err != nil {
			logger.WarnKV(ctx, "Notification popup failed", "label", label, "error", err)
		}
	}()
}

// StopAll silences any looping ringtone regardless of which alarm started it.
func (d *Desktop) StopAll() {
	d.player.Stop()
}
