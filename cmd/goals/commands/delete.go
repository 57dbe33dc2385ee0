// ABOUTME: CLI command to delete an entity with archival
// ABOUTME: The prior state is archived and junction rows are removed in one transaction
package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/willbda/ten-week-goal-app-sub004/internal/models"
)

var deleteNotes string

// NewDeleteCmd creates the delete command
func NewDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [kind] [id]",
		Short: "Delete an entity, archiving its prior state",
		Long: `Delete an entity by kind and id.

Kinds: action, goal, measure, personal_value, term.

The record's full prior state is written to the archive before
removal, and any relationship rows referencing it are removed in
the same transaction.

Examples:
  goals delete goal 3
  goals delete action 12 --notes "logged by mistake"`,
		Args: cobra.ExactArgs(2),
		RunE: runDelete,
	}

	cmd.Flags().StringVar(&deleteNotes, "notes", "", "Note recorded alongside the archive entry")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	kind, err := models.ParseEntityKind(args[0])
	if err != nil {
		return err
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("id must be an integer, got %q", args[1])
	}

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Delete(kind, id, deleteNotes); err != nil {
		return fmt.Errorf("deleting %s %d: %w", kind, id, err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted %s %d (prior state archived)\n", kind, id)
	}
	return nil
}
