package notifier

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakePlayer records Play/Stop calls.
type fakePlayer struct {
	mu     sync.Mutex
	played []string
	stops  int
}

func (f *fakePlayer) Play(_ context.Context, path string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.played = append(f.played, path)
}

func (f *fakePlayer) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.stops++
}

// TestDesktop_NotifyStartsRingtoneAndPopup checks Notify is non-blocking and
// routes the configured ringtone to the player.
func TestDesktop_NotifyStartsRingtoneAndPopup(t *testing.T) {
	t.Parallel()

	player := new(fakePlayer)
	sink := NewDesktop(player, "/tmp/ring.wav")

	popupDone := make(chan struct{})
	var gotTitle, gotMessage string

	sink.popup = func(title, message string) error {
		gotTitle, gotMessage = title, message
		close(popupDone)

		return nil
	}

	firedAt := time.Date(2024, time.March, 15, 9, 30, 2, 0, time.Local)
	sink.Notify(context.Background(), "Strategy Planning", firedAt)

	select {
	case <-popupDone:
	case <-time.After(time.Second):
		t.Fatal("popup was not dispatched")
	}

	require.Equal(t, "⏰ Strategy Planning", gotTitle)
	require.Equal(t, "09:30", gotMessage)
	require.Equal(t, []string{"/tmp/ring.wav"}, player.played)

	sink.StopAll()
	require.Equal(t, 1, player.stops)
}
