// ABOUTME: CLI command to log an action
// ABOUTME: Optionally records a measurement that counts toward matching goal targets
package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/willbda/ten-week-goal-app-sub004/internal/models"
)

var (
	logMinutes float64
	logUnit    string
	logValue   float64
)

// NewLogCmd creates the log command
func NewLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log [title]",
		Short: "Log an action",
		Long: `Log an action, optionally with a measurement.

A measurement with the same unit as a goal target counts toward
that goal's progress.

Examples:
  goals log "Morning run" --unit km --value 7.5
  goals log "Reviewed term plan" --minutes 25`,
		Args: cobra.ExactArgs(1),
		RunE: runLog,
	}

	cmd.Flags().Float64Var(&logMinutes, "minutes", 0, "Duration in minutes")
	cmd.Flags().StringVar(&logUnit, "unit", "", "Measurement unit (must match an existing measure)")
	cmd.Flags().Float64Var(&logValue, "value", 0, "Measured amount in the given unit")

	return cmd
}

func runLog(cmd *cobra.Command, args []string) error {
	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	now := time.Now()
	action := &models.Action{
		Title:     args[0],
		StartTime: &now,
	}
	if logMinutes > 0 {
		action.DurationMinutes = &logMinutes
	}

	if err := store.Actions.Create(action); err != nil {
		return fmt.Errorf("creating action: %w", err)
	}

	if logUnit != "" {
		measure, err := store.Measures.GetByUnit(logUnit)
		if err != nil {
			return fmt.Errorf("looking up measure: %w", err)
		}
		if measure == nil {
			return fmt.Errorf("no measure with unit %q; add a goal target with this unit first", logUnit)
		}
		ma := &models.MeasuredAction{
			ActionID:  action.ID,
			MeasureID: measure.ID,
			Value:     logValue,
		}
		if err := store.Relations.CreateMeasuredAction(ma); err != nil {
			return fmt.Errorf("recording measurement: %w", err)
		}
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Logged action %d: %s\n", action.ID, action.Title)
		if logUnit != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "  Measured: %g %s\n", logValue, logUnit)
		}
	}
	return nil
}
