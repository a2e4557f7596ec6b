// Package data holds the cli commands that manage the data directory as a whole
//
// e.g., qitrack data ...
package data

import (
	"github.com/spf13/cobra"
)

// DataCmd returns the data parent command
func DataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Initialize, import and export the projects and pdsa tables",
	}

	cmd.AddCommand(InitCmd())
	cmd.AddCommand(ImportCmd())
	cmd.AddCommand(ExportCmd())

	return cmd
}
