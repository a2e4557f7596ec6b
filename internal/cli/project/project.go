// Package project holds all cli commands related to projects
//
// e.g., qitrack project ...
package project

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/qitrack/internal/cli/styles"
	"github.com/thenoetrevino/qitrack/internal/models"
)

// ProjectCmd returns the project parent command
func ProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage QI projects",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(TagsCmd())
	cmd.AddCommand(StatusesCmd())

	return cmd
}

// fieldFlags registers one string flag per editable project field
func fieldFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "Project title")
	cmd.Flags().String("smart-aim", "", "SMART aim")
	cmd.Flags().String("problem", "", "Problem statement")
	cmd.Flags().String("status", "", "Status: In Progress, Completed, On Hold, Cancelled")
	cmd.Flags().String("metrics", "", "Metrics tracked")
	cmd.Flags().String("advisor", "", "Faculty advisor")
	cmd.Flags().String("service", "", "Clinical service")
	cmd.Flags().String("start-date", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().String("end-date", "", "End date (YYYY-MM-DD)")
	cmd.Flags().String("tags", "", "Comma separated tags")
	cmd.Flags().Bool("interactive", false, "Fill the fields in a form")
}

// printProjectLine prints the one-line list form of a project
func printProjectLine(p models.Project) {
	line := fmt.Sprintf("  #%d %s  %s", p.ID, styles.TitleStyle.Render(p.Title), styles.RenderStatus(p.Status))
	if tags := p.TagList(); len(tags) > 0 {
		line += "  " + styles.RenderTags(tags)
	}
	fmt.Println(line)
}
