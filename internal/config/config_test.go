package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks default filling and rejection of bad values.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Nil config.
	require.Error(t, Validate(nil))

	// Negative interval.
	cfg := &Config{TickInterval: -time.Second}
	require.Error(t, Validate(cfg))

	// Zero config picks up all defaults.
	cfg = new(Config)
	require.NoError(t, Validate(cfg))
	require.Equal(t, DefaultSettingsFilename, cfg.SettingsFile)
	require.Equal(t, DefaultTickInterval, cfg.TickInterval)
	require.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

// TestSaveLoadRoundtrip ensures configuration is persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "day-starter.yaml")

	cfg := &Config{
		SettingsFile: "/tmp/alarms.json",
		TickInterval: 250 * time.Millisecond,
		LogLevel:     "debug",
	}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

// TestLoadMissingFile verifies Load surfaces the read error.
func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
