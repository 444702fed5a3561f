package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/day-starter/internal/config"
	"github.com/oshokin/day-starter/internal/service/daemon"
	"github.com/oshokin/day-starter/internal/version"
)

var (
	// configPath to the process configuration YAML file.
	configPath string
	// settingsFile path where the alarm list and preferences are stored.
	settingsFile string
	// logLevel overrides the configured log level.
	logLevel string
	// armOnStart arms the scheduler immediately after startup.
	armOnStart bool

	// rootCmd represents the base command for running the alarm daemon.
	rootCmd = &cobra.Command{
		Use:   "day-starter",
		Short: "Run the daily-alarm scheduler daemon.",
		Long: `Starts the day-starter daemon that evaluates the configured daily alarms
once per second and presents desktop notifications with a looping ringtone
when an alarm comes due.

Alarms are read from a JSON settings file (legacy bare-list files are
accepted). When the file is missing or unreadable, a built-in default list
is used. On Linux the daemon can pause firing while the session is locked
and replay missed alarms in order on unlock.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &daemon.Options{
				ConfigPath:   configPath,
				SettingsFile: settingsFile,
				LogLevel:     logLevel,
				ArmOnStart:   armOnStart,
			}

			return daemon.Run(ctx, options)
		},
	}

	// validateCmd checks the settings file without starting the daemon.
	validateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Check that every enabled alarm has a valid HH:MM time.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return daemon.Validate(cmd.Context(), configPath, settingsFile)
		},
	}
)

// Execute runs the day-starter CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.PersistentFlags().
		StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to process configuration file")
	rootCmd.PersistentFlags().
		StringVarP(&settingsFile, "settings-file", "s", "", "path to the alarm settings JSON (overrides config)")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "", "log level override (debug..fatal)")
	rootCmd.Flags().BoolVarP(&armOnStart, "arm", "a", true, "arm all alarms for today at startup")

	rootCmd.AddCommand(validateCmd)
}
