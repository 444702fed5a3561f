package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/day-starter/internal/domain/alarm"
)

// TestFileRepository_NotFound verifies Load returns ErrNotFound for a missing file.
func TestFileRepository_NotFound(t *testing.T) {
	t.Parallel()

	repo := NewFileRepository(filepath.Join(t.TempDir(), "missing.json"))

	s, err := repo.Load(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
	require.Nil(t, s)
}

// TestFileRepository_SaveLoad_Roundtrip ensures Save followed by Load returns equal settings.
func TestFileRepository_SaveLoad_Roundtrip(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "alarms.json")
	repo := NewFileRepository(file)

	want := &Settings{
		Alarms: []Alarm{
			{Label: "Workout", Time: "06:45", Enabled: true},
			{Label: "", Time: "", Enabled: false},
			{Label: "Standup", Time: "10:15", Enabled: true},
		},
		DefaultRingtone: "/tmp/ring.wav",
		PauseOnLock:     false,
	}

	require.NoError(t, repo.Save(context.Background(), want))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, want, got)

	_, err = os.Stat(file)
	require.NoError(t, err)
}

// TestFileRepository_LegacyList checks a bare array is normalized like the wrapped layout.
func TestFileRepository_LegacyList(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	legacy := filepath.Join(dir, "legacy.json")
	require.NoError(t, os.WriteFile(legacy,
		[]byte(`[{"label":" Workout ","time":" 06:45 "},{"label":"Off","time":"07:00","enabled":false}]`), 0o600))

	wrapped := filepath.Join(dir, "wrapped.json")
	require.NoError(t, os.WriteFile(wrapped,
		[]byte(`{"alarms":[{"label":" Workout ","time":" 06:45 "},{"label":"Off","time":"07:00","enabled":false}]}`), 0o600))

	fromLegacy, err := NewFileRepository(legacy).Load(context.Background())
	require.NoError(t, err)

	fromWrapped, err := NewFileRepository(wrapped).Load(context.Background())
	require.NoError(t, err)

	require.Equal(t, fromWrapped, fromLegacy)
	require.Equal(t, "", fromLegacy.DefaultRingtone)
	require.True(t, fromLegacy.PauseOnLock)

	// Fields are sanitized, missing enabled defaults to true.
	require.Equal(t, Alarm{Label: "Workout", Time: "06:45", Enabled: true}, fromLegacy.Alarms[0])
	require.False(t, fromLegacy.Alarms[1].Enabled)
}

// TestFileRepository_EmptyAndMalformed covers default fallback and decode errors.
func TestFileRepository_EmptyAndMalformed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"alarms":[]}`), 0o600))

	s, err := NewFileRepository(empty).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, Default().Alarms, s.Alarms)

	malformed := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(malformed, []byte(`{"alarms":`), 0o600))

	_, err = NewFileRepository(malformed).Load(context.Background())
	require.Error(t, err)
}

// TestSettings_Validate checks save-time validation names the offending alarm.
func TestSettings_Validate(t *testing.T) {
	t.Parallel()

	s := &Settings{
		Alarms: []Alarm{
			{Label: "ok", Time: "09:30", Enabled: true},
			{Label: "empty time is fine", Time: "", Enabled: true},
			{Label: "disabled is fine", Time: "nonsense", Enabled: false},
		},
	}
	require.NoError(t, s.Validate())

	s.Alarms = append(s.Alarms, Alarm{Label: "bad", Time: "25:00", Enabled: true})

	err := s.Validate()
	require.ErrorIs(t, err, domain.ErrInvalidTimeFormat)
	require.Contains(t, err.Error(), "alarm 4")
}

// TestSettings_RegistryAndCapture round-trips entries through the registry.
func TestSettings_RegistryAndCapture(t *testing.T) {
	t.Parallel()

	source := Default()
	registry := source.Registry()
	require.Equal(t, len(source.Alarms), registry.Len())

	captured := &Settings{DefaultRingtone: source.DefaultRingtone, PauseOnLock: source.PauseOnLock}
	captured.CaptureAlarms(registry.Snapshot())
	require.Equal(t, source, captured)
}
