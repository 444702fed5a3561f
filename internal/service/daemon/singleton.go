package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/day-starter/internal/logger"
)

// ErrAlreadyRunning indicates another daemon instance owns the alarms.
var ErrAlreadyRunning = errors.New("another day-starter instance is already running")

// ensureSingleInstance refuses to start when a process with the same
// executable name is already running. Two instances would double-fire every
// alarm. An unreadable process table only logs a warning, the check is a
// guard and not a lock.
func ensureSingleInstance(ctx context.Context) error {
	executable, err := os.Executable()
	if err != nil {
		logger.WarnKV(ctx, "Cannot resolve own executable, skipping single-instance check", "error", err)

		return nil
	}

	name := filepath.Base(executable)

	processes, err := ps.Processes()
	if err != nil {
		logger.WarnKV(ctx, "Cannot scan processes, skipping single-instance check", "error", err)

		return nil
	}

	ownPID := os.Getpid()

	for _, process := range processes {
		if process.Pid() == ownPID {
			continue
		}

		if process.Executable() == name {
			return fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, process.Pid())
		}
	}

	return nil
}
