package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/oshokin/day-starter/internal/config"
	domain "github.com/oshokin/day-starter/internal/domain/alarm"
)

// Alarm is the persisted form of one alarm entry.
type Alarm struct {
	// Label is the user-defined display name.
	Label string `json:"label"`
	// Time is the "HH:MM" time of day, may be empty.
	Time string `json:"time"`
	// Enabled controls whether the alarm is evaluated for firing.
	Enabled bool `json:"enabled"`
}

// Settings is the persisted user configuration: the ordered alarm list plus
// ringtone and pause-on-lock preferences.
type Settings struct {
	// Alarms is the ordered alarm list.
	Alarms []Alarm `json:"alarms"`
	// DefaultRingtone is the path to a sound file, empty means the
	// generated tone fallback.
	DefaultRingtone string `json:"default_ringtone"`
	// PauseOnLock suspends firing while the OS session is locked.
	PauseOnLock bool `json:"pause_on_lock"`
}

// Repository defines persistence operations for user settings.
type Repository interface {
	Load(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, settings *Settings) error
}

// ErrNotFound is returned when the settings file does not exist yet.
var ErrNotFound = errors.New("settings not found")

// Default returns the built-in alarm list used when no settings file exists
// or the stored one cannot be read.
func Default() *Settings {
	return &Settings{
		Alarms: []Alarm{
			{Label: "Strategy Planning", Time: "09:30", Enabled: true},
			{Label: "Video Editing", Time: "10:00", Enabled: true},
			{Label: "Social Media Posting", Time: "14:00", Enabled: true},
		},
		DefaultRingtone: "",
		PauseOnLock:     true,
	}
}

// FileRepository persists user settings to a JSON file on disk.
//
// Two on-disk layouts are accepted: the current wrapped object and the
// legacy format, a bare list of alarm records. Legacy files are normalized
// on load with an empty ringtone and pause-on-lock enabled.
type FileRepository struct {
	// path is the filesystem location of the settings JSON file.
	path string
	// mu protects concurrent access to the settings file.
	mu sync.Mutex
}

// NewFileRepository creates a repository that reads/writes JSON at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load reads settings from disk, accepting both layouts, and sanitizes
// every field. An empty alarm list falls back to the defaults.
func (r *FileRepository) Load(_ context.Context) (*Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read settings file: %w", err)
	}

	return decode(contents)
}

// Save writes settings to disk in the wrapped layout.
func (r *FileRepository) Save(_ context.Context, settings *Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// rawAlarm mirrors Alarm with optional fields so absent values can fall
// back to defaults instead of Go zero values.
type rawAlarm struct {
	Label   string `json:"label"`
	Time    string `json:"time"`
	Enabled *bool  `json:"enabled"`
}

// rawSettings mirrors Settings with optional fields for the same reason.
type rawSettings struct {
	Alarms          []rawAlarm `json:"alarms"`
	DefaultRingtone string     `json:"default_ringtone"`
	PauseOnLock     *bool      `json:"pause_on_lock"`
}

// decode parses either on-disk layout and normalizes the result.
func decode(contents []byte) (*Settings, error) {
	var raw rawSettings

	if isLegacyList(contents) {
		// Legacy layout: a bare list of alarm records.
		if err := json.Unmarshal(contents, &raw.Alarms); err != nil {
			return nil, fmt.Errorf("decode legacy settings file: %w", err)
		}
	} else if err := json.Unmarshal(contents, &raw); err != nil {
		return nil, fmt.Errorf("decode settings file: %w", err)
	}

	result := &Settings{
		DefaultRingtone: strings.TrimSpace(raw.DefaultRingtone),
		PauseOnLock:     true,
	}

	if raw.PauseOnLock != nil {
		result.PauseOnLock = *raw.PauseOnLock
	}

	for _, item := range raw.Alarms {
		enabled := true
		if item.Enabled != nil {
			enabled = *item.Enabled
		}

		result.Alarms = append(result.Alarms, Alarm{
			Label:   strings.TrimSpace(item.Label),
			Time:    strings.TrimSpace(item.Time),
			Enabled: enabled,
		})
	}

	if len(result.Alarms) == 0 {
		result.Alarms = Default().Alarms
	}

	return result, nil
}

// isLegacyList reports whether the file holds a bare JSON array.
func isLegacyList(contents []byte) bool {
	trimmed := bytes.TrimLeft(contents, " \t\r\n")

	return len(trimmed) > 0 && trimmed[0] == '['
}

// Validate checks that every enabled alarm with a non-empty time parses.
// The returned error names the offending value.
func (s *Settings) Validate() error {
	for position, item := range s.Alarms {
		if !item.Enabled || strings.TrimSpace(item.Time) == "" {
			continue
		}

		if _, err := domain.ParseClock(item.Time); err != nil {
			return fmt.Errorf("alarm %d: %w", position+1, err)
		}
	}

	return nil
}

// Registry builds a fresh alarm registry from the stored list.
func (s *Settings) Registry() *domain.Registry {
	registry := domain.NewRegistry()
	for _, item := range s.Alarms {
		registry.Add(item.Label, item.Time, item.Enabled)
	}

	return registry
}

// CaptureAlarms replaces the stored alarm list with the current field
// values of the provided entries, in their display order.
func (s *Settings) CaptureAlarms(entries []domain.Entry) {
	s.Alarms = make([]Alarm, 0, len(entries))
	for _, entry := range entries {
		s.Alarms = append(s.Alarms, Alarm{
			Label:   strings.TrimSpace(entry.Label),
			Time:    strings.TrimSpace(entry.Time),
			Enabled: entry.Enabled,
		})
	}
}
