// ABOUTME: Root Cobra command wiring for the goals CLI
// ABOUTME: Holds global flags and the shared storage initialization helper
package commands

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/willbda/ten-week-goal-app-sub004/internal/config"
	"github.com/willbda/ten-week-goal-app-sub004/internal/storage"
)

var (
	verbose bool
	quiet   bool
)

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Track goals, actions, and values across ten-week terms",
		Long: `Track goals, actions, and values across ten-week terms.

Goals carry measurable targets; logged actions with matching units
count toward them. Every update and delete archives the prior state.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")

	cmd.AddCommand(
		NewAddCmd(),
		NewLogCmd(),
		NewListCmd(),
		NewProgressCmd(),
		NewValuesCmd(),
		NewDeleteCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// openStorage loads configuration and opens the database. Callers own the
// returned handle and must Close it.
func openStorage() (*storage.Storage, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	logger := zerolog.Nop()
	if verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
			logger = logger.Level(level)
		}
	}

	store, err := storage.Open(cfg.DBPath, storage.Options{
		GraphStrategy: cfg.GraphStrategy,
		Logger:        logger,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}
	return store, nil
}
