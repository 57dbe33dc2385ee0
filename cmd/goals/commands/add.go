// ABOUTME: CLI command to create a new goal
// ABOUTME: Handles optional dates and an optional measurable target by unit
package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/willbda/ten-week-goal-app-sub004/internal/models"
)

var (
	addDescription string
	addStartDate   string
	addTargetDate  string
	addActionPlan  string
	addUnit        string
	addTarget      float64
)

// NewAddCmd creates the add command
func NewAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Create a new goal",
		Long: `Create a new goal, optionally with a measurable target.

Examples:
  goals add "Run 120km"
  goals add "Run 120km" --unit km --target 120 --target-date 2026-03-15
  goals add "Read more" --description "One book a fortnight"`,
		Args: cobra.ExactArgs(1),
		RunE: runAdd,
	}

	cmd.Flags().StringVar(&addDescription, "description", "", "What achieving this goal looks like")
	cmd.Flags().StringVar(&addStartDate, "start-date", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&addTargetDate, "target-date", "", "Target completion date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&addActionPlan, "action-plan", "", "How the goal will be pursued")
	cmd.Flags().StringVar(&addUnit, "unit", "", "Measurement unit for the target (e.g. km, pages)")
	cmd.Flags().Float64Var(&addTarget, "target", 0, "Numeric target in the given unit")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	goal := &models.Goal{
		Title:       args[0],
		Description: addDescription,
		ActionPlan:  addActionPlan,
	}
	if goal.StartDate, err = parseDateFlag(addStartDate, "start-date"); err != nil {
		return err
	}
	if goal.TargetDate, err = parseDateFlag(addTargetDate, "target-date"); err != nil {
		return err
	}

	if err := store.Goals.Create(goal); err != nil {
		return fmt.Errorf("creating goal: %w", err)
	}

	if addUnit != "" && addTarget > 0 {
		measure, err := store.Measures.GetByUnit(addUnit)
		if err != nil {
			return fmt.Errorf("looking up measure: %w", err)
		}
		if measure == nil {
			measure = &models.Measure{Title: addUnit, Unit: addUnit}
			if err := store.Measures.Create(measure); err != nil {
				return fmt.Errorf("creating measure: %w", err)
			}
		}
		target := &models.GoalMeasureTarget{
			GoalID:      goal.ID,
			MeasureID:   measure.ID,
			TargetValue: addTarget,
		}
		if err := store.Relations.CreateGoalMeasureTarget(target); err != nil {
			return fmt.Errorf("creating target: %w", err)
		}
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Added goal %d: %s\n", goal.ID, goal.Title)
		if addUnit != "" && addTarget > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "  Target: %g %s\n", addTarget, addUnit)
		}
	}
	return nil
}

func parseDateFlag(raw, name string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("--%s must be YYYY-MM-DD, got %q", name, raw)
	}
	return &t, nil
}
