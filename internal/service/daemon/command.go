package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/oshokin/day-starter/internal/config"
	"github.com/oshokin/day-starter/internal/logger"
	"github.com/oshokin/day-starter/internal/repository/settings"
	"github.com/oshokin/day-starter/internal/service/notifier"
	"github.com/oshokin/day-starter/internal/service/scheduler"
	"github.com/oshokin/day-starter/internal/service/session"
	"github.com/oshokin/day-starter/internal/service/sound"
)

// Options controls the day-starter daemon process and configuration.
type Options struct {
	// ConfigPath specifies the path to the process settings YAML file.
	ConfigPath string
	// SettingsFile provides an optional alarm settings JSON path override.
	SettingsFile string
	// LogLevel provides an optional log level override.
	LogLevel string
	// ArmOnStart arms the scheduler immediately after startup.
	ArmOnStart bool
}

// Run starts the alarm daemon and blocks until the context is canceled.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "day-starter")

	cfg, err := loadConfig(ctx, opts.ConfigPath)
	if err != nil {
		return err
	}

	applyLogLevel(ctx, cfg, opts.LogLevel)

	if err = ensureSingleInstance(ctx); err != nil {
		return err
	}

	settingsFile := cfg.SettingsFile
	if opts.SettingsFile != "" {
		settingsFile = opts.SettingsFile
	}

	repo := settings.NewFileRepository(settingsFile)
	userSettings := loadSettings(ctx, repo, settingsFile)

	player := sound.NewLoopPlayer()
	sink := notifier.NewDesktop(player, userSettings.DefaultRingtone)

	// Pause-on-lock needs both the user preference and the platform capability.
	pauseOnLock := userSettings.PauseOnLock

	var watcher session.Watcher

	if pauseOnLock {
		watcher, err = session.NewWatcher(ctx)
		if err != nil {
			pauseOnLock = false

			logger.InfoKV(ctx, "Pause on lock disabled", "reason", err.Error())
		}
	}

	sched := scheduler.New(userSettings.Registry(), sink, scheduler.Config{
		TickInterval: cfg.TickInterval,
		PauseOnLock:  pauseOnLock,
	})

	// Done channel is closed after the scheduler loop finishes so shutdown
	// blocks until all alarm state is settled.
	done := make(chan struct{})

	go func() {
		defer close(done)

		_ = sched.Run(ctx)
	}()

	if watcher != nil {
		go forwardSessionEvents(ctx, watcher, sched)
	}

	if opts.ArmOnStart {
		if err = sched.StartAll(ctx); err != nil {
			logger.WarnKV(ctx, "Cannot arm at startup", "error", err)
		}
	}

	logger.InfoKV(ctx, "Day starter running",
		"settings_file", settingsFile, "pause_on_lock", pauseOnLock, "armed", opts.ArmOnStart)

	<-ctx.Done()

	if watcher != nil {
		_ = watcher.Close()
	}

	<-done
	player.Stop()

	logger.Info(ctx, "Day starter stopped")

	return nil
}

// Validate loads the alarm settings and checks every enabled time parses.
// It backs the `validate` subcommand.
func Validate(ctx context.Context, configPath, settingsFile string) error {
	cfg, err := loadConfig(ctx, configPath)
	if err != nil {
		return err
	}

	if settingsFile == "" {
		settingsFile = cfg.SettingsFile
	}

	userSettings, err := settings.NewFileRepository(settingsFile).Load(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if err = userSettings.Validate(); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Settings are valid",
		"settings_file", settingsFile, "alarms", len(userSettings.Alarms))

	return nil
}

// loadConfig reads the process configuration, falling back to defaults when
// no file exists yet.
func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	cfg, err := config.Load(path)

	switch {
	case err == nil:
		return cfg, nil
	case errors.Is(err, os.ErrNotExist):
		logger.InfoKV(ctx, "No config file, using defaults", "path", path)

		return config.Default(), nil
	default:
		return nil, fmt.Errorf("load config: %w", err)
	}
}

// applyLogLevel configures the global log level, CLI override first.
func applyLogLevel(ctx context.Context, cfg *config.Config, override string) {
	levelName := cfg.LogLevel
	if override != "" {
		levelName = override
	}

	level, ok := logger.ParseLogLevel(levelName)
	if !ok {
		logger.WarnKV(ctx, "Unknown log level, keeping current", "log_level", levelName)

		return
	}

	logger.SetLevel(level)
}

// loadSettings reads the alarm settings, falling back to the built-in
// defaults on any read failure so the daemon always starts.
func loadSettings(ctx context.Context, repo settings.Repository, path string) *settings.Settings {
	userSettings, err := repo.Load(ctx)

	switch {
	case err == nil:
		return userSettings
	case errors.Is(err, settings.ErrNotFound):
		logger.InfoKV(ctx, "No settings file, using default alarms", "path", path)
	default:
		logger.WarnKV(ctx, "Cannot read settings, using default alarms", "path", path, "error", err)
	}

	return settings.Default()
}

// forwardSessionEvents re-dispatches lock signals onto the scheduler goroutine.
func forwardSessionEvents(ctx context.Context, watcher session.Watcher, sched *scheduler.Scheduler) {
	for event := range watcher.Events() {
		var err error

		switch event {
		case session.Locked:
			err = sched.OnLock(ctx)
		case session.Unlocked:
			err = sched.OnUnlock(ctx)
		}

		if err != nil {
			// Only happens when the scheduler is shutting down.
			logger.DebugKV(ctx, "Session event dropped", "event", event.String(), "error", err)

			return
		}
	}
}
