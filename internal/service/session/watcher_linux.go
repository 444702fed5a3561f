package session

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/oshokin/day-starter/internal/logger"
)

const (
	// screenSaverInterface is implemented by desktop environments to
	// announce lock-state transitions on the session bus.
	screenSaverInterface = "org.freedesktop.ScreenSaver"
	// screenSaverMember is the lock-state change signal name.
	screenSaverMember = "ActiveChanged"

	// signalBuffer absorbs bursts so the bus goroutine never blocks.
	signalBuffer = 16
)

// dbusWatcher translates ScreenSaver ActiveChanged signals into Events.
type dbusWatcher struct {
	conn    *dbus.Conn
	signals chan *dbus.Signal
	events  chan Event
}

// newPlatformWatcher subscribes to session lock signals on the D-Bus
// session bus. Absence of a session bus reports ErrUnavailable.
func newPlatformWatcher(ctx context.Context) (Watcher, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if err = conn.AddMatchSignal(
		dbus.WithMatchInterface(screenSaverInterface),
		dbus.WithMatchMember(screenSaverMember),
	); err != nil {
		_ = conn.Close()

		return nil, fmt.Errorf("%w: subscribe: %w", ErrUnavailable, err)
	}

	w := &dbusWatcher{
		conn:    conn,
		signals: make(chan *dbus.Signal, signalBuffer),
		events:  make(chan Event, signalBuffer),
	}

	conn.Signal(w.signals)

	go w.translate(ctx)

	return w, nil
}

// translate forwards bus signals as Events until the bus channel closes.
func (w *dbusWatcher) translate(ctx context.Context) {
	defer close(w.events)

	for signal := range w.signals {
		if signal.Name != screenSaverInterface+"."+screenSaverMember || len(signal.Body) == 0 {
			continue
		}

		active, ok := signal.Body[0].(bool)
		if !ok {
			continue
		}

		event := Unlocked
		if active {
			event = Locked
		}

		select {
		case w.events <- event:
		default:
			// A consumer this far behind will resync on the next signal.
			logger.WarnKV(ctx, "Dropping session event, consumer not keeping up", "event", event.String())
		}
	}
}

// Events returns the channel of lock-state transitions.
func (w *dbusWatcher) Events() <-chan Event {
	return w.events
}

// Close disconnects from the bus. Closing the connection closes the signal
// channel, which in turn ends the translate goroutine and the event channel.
func (w *dbusWatcher) Close() error {
	return w.conn.Close()
}
