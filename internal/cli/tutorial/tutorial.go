// Package tutorial prints the qitrack quick reference.
package tutorial

import (
	_ "embed"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/qitrack/internal/cli/report"
)

//go:embed tutorial.md
var tutorialContent string

const renderWidth = 80

// TutorialCmd returns the tutorial command
func TutorialCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tutorial",
		Short: "Show the qitrack workflow reference",
		Long: `Show a short reference of the qitrack workflow: projects, PDSA cycles,
project context, import and export.

Use --raw to print the markdown source, e.g. to pipe it into another pager.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, _ := cmd.Flags().GetBool("raw")
			return outputTutorial(raw)
		},
	}

	cmd.Flags().Bool("raw", false, "Print markdown without rendering")

	return cmd
}

func outputTutorial(raw bool) error {
	if raw {
		fmt.Print(tutorialContent)
		return nil
	}

	rendered, err := report.Render(tutorialContent, renderWidth)
	if err != nil {
		fmt.Print(tutorialContent)
		return nil
	}
	fmt.Print(rendered)
	return nil
}
