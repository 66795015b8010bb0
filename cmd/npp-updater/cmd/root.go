package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chyehsia/npp-updater/internal/logger"
	"github.com/chyehsia/npp-updater/internal/service/updater"
	"github.com/chyehsia/npp-updater/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string

	// logLevel is the minimum level for log output.
	logLevel string

	// checkOnly reports the update decision without applying anything.
	checkOnly bool

	// rootCmd represents the base command that checks for and applies updates.
	rootCmd = &cobra.Command{
		Use:   "npp-updater",
		Short: "Check for and silently install the latest Notepad++ release",
		Long: "npp-updater reads the installed Notepad++ version from the host registry, " +
			"compares it with the latest published release, and when an update is " +
			"available downloads the matching installer and runs it unattended. " +
			"Exit code 0 means up to date or update applied; any failure exits non-zero.",
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}

			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &updater.Options{
				ConfigPath: configPath,
				CheckOnly:  checkOnly,
			}

			return updater.Run(ctx, options)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the npp-updater CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to configuration file")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "info", "minimum log level (debug|info|warn|error)")
	rootCmd.Flags().BoolVar(&checkOnly, "check", false, "report the update decision without installing")
}
