// Package use holds all cli commands related to setting contextual information
// e.g., qitrack use ...
package use

import (
	"github.com/spf13/cobra"
)

// UseCmd returns the use parent command
func UseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use",
		Short: "Manage contextual settings for the current shell",
		Long: `Set and manage contextual information for the current shell session.

The 'use' command sets context that applies to subsequent commands,
eliminating the need to repeat --project on every pdsa command.

Examples:
  eval $(qitrack use project 3)       # Use project 3
  eval $(qitrack use project --clear) # Clear project context
  qitrack use project --show          # Show current project`,
	}

	cmd.AddCommand(ProjectCmd())

	return cmd
}
