package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds process parameters for the day-starter daemon.
// User-facing alarm settings live in their own JSON file, see the
// repository/settings package.
type Config struct {
	// SettingsFile is the path to the JSON file storing the alarm list
	// and user preferences.
	SettingsFile string `yaml:"settings_file"`
	// TickInterval is the period of the firing-evaluation loop.
	TickInterval time.Duration `yaml:"tick_interval"`
	// LogLevel is the minimum level for log output (debug..fatal).
	LogLevel string `yaml:"log_level"`
}

const (
	// DefaultConfigFilename is the default filename for process settings.
	DefaultConfigFilename = "day-starter.yaml"

	// DefaultSettingsFilename is the default filename for the alarm list JSON.
	DefaultSettingsFilename = "day-starter-alarms.json"

	// DefaultTickInterval bounds firing latency to about one second.
	DefaultTickInterval = time.Second

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errTickIntervalNegative is returned for a negative tick interval.
	errTickIntervalNegative = errors.New("tick interval must not be negative")
)

// Load reads configuration from the provided path and fills in defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// Validate checks the configuration and fills in defaults for absent fields.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.TickInterval < 0 {
		return errTickIntervalNegative
	}

	if cfg.TickInterval == 0 {
		cfg.TickInterval = DefaultTickInterval
	}

	if cfg.SettingsFile == "" {
		cfg.SettingsFile = DefaultSettingsFilename
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	return nil
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	cfg := new(Config)
	// Validate never fails on a zero config.
	_ = Validate(cfg)

	return cfg
}
