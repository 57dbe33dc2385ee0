// ABOUTME: Tests for delete command argument validation
// ABOUTME: Verifies kind parsing and id parsing fail before touching storage
package commands

import (
	"bytes"
	"testing"
)

func TestNewDeleteCmd(t *testing.T) {
	cmd := NewDeleteCmd()

	if cmd.Use != "delete [kind] [id]" {
		t.Errorf("Use = %q, want %q", cmd.Use, "delete [kind] [id]")
	}

	if flag := cmd.Flags().Lookup("notes"); flag == nil {
		t.Error("--notes flag not found")
	}
}

func TestDeleteCmd_RejectsBadArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown kind", []string{"habit", "3"}},
		{"non-numeric id", []string{"goal", "three"}},
		{"missing id", []string{"goal"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewDeleteCmd()
			var output bytes.Buffer
			cmd.SetOut(&output)
			cmd.SetErr(&output)
			cmd.SetArgs(tt.args)

			if err := cmd.Execute(); err == nil {
				t.Errorf("Execute(%v) succeeded, want error", tt.args)
			}
		})
	}
}
