package session

import (
	"context"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/require"
)

// TestDBusWatcher_Translate converts ActiveChanged signals into events and
// ignores everything else.
func TestDBusWatcher_Translate(t *testing.T) {
	t.Parallel()

	w := &dbusWatcher{
		signals: make(chan *dbus.Signal, signalBuffer),
		events:  make(chan Event, signalBuffer),
	}

	go w.translate(context.Background())

	name := screenSaverInterface + "." + screenSaverMember
	w.signals <- &dbus.Signal{Name: name, Body: []any{true}}
	w.signals <- &dbus.Signal{Name: "org.freedesktop.DBus.NameAcquired", Body: []any{"ignored"}}
	w.signals <- &dbus.Signal{Name: name, Body: []any{"not a bool"}}
	w.signals <- &dbus.Signal{Name: name, Body: []any{false}}
	close(w.signals)

	var got []Event
	for event := range w.Events() {
		got = append(got, event)
	}

	require.Equal(t, []Event{Locked, Unlocked}, got)
}

// TestEventString covers the event names used in log output.
func TestEventString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "locked", Locked.String())
	require.Equal(t, "unlocked", Unlocked.String())

	// The channel close path terminates within a bounded time even when
	// nothing was sent.
	w := &dbusWatcher{
		signals: make(chan *dbus.Signal),
		events:  make(chan Event),
	}

	go w.translate(context.Background())
	close(w.signals)

	select {
	case _, open := <-w.Events():
		require.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("translate did not close the event channel")
	}
}
