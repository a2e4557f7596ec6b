// Package pdsa holds all cli commands related to PDSA cycles
//
// e.g., qitrack pdsa ...
package pdsa

import (
	"github.com/spf13/cobra"
)

// PdsaCmd returns the pdsa parent command
func PdsaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pdsa",
		Short: "Manage the PDSA cycles of a project",
	}

	cmd.AddCommand(AddCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ReplaceCmd())

	return cmd
}
