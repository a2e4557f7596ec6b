package project

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/qitrack/internal/cli"
	"github.com/thenoetrevino/qitrack/internal/cli/report"
	"github.com/thenoetrevino/qitrack/internal/cli/styles"
)

// ShowCmd returns the project show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a project and its PDSA cycles",
		Long: `Show every field of a project followed by its PDSA cycles.

Examples:
  # Rendered report
  qitrack project show --id=1

  # Raw markdown, e.g. for a portfolio document
  qitrack project show --id=1 --markdown > project-1.md

  # JSON output for agents
  qitrack project show --id=1 --json
`,
		RunE: runShow,
	}

	cmd.Flags().Int("id", 0, "Project ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cmd.Flags().Bool("markdown", false, "Print the report as raw markdown")
	cli.OutputFlags(cmd, "Minimal output (ID only)")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	projectID, _ := cmd.Flags().GetInt("id")
	markdown, _ := cmd.Flags().GetBool("markdown")
	formatter := cli.Formatter(cmd)

	// Initialize CLI
	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail("INITIALIZATION_ERROR", err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
	}()

	project, err := cliInstance.App.ProjectService.GetProject(ctx, projectID)
	if err != nil {
		return formatter.FailWithSuggestion("PROJECT_FETCH_ERROR", err, "List projects with: qitrack project list")
	}

	cycles, err := cliInstance.App.PdsaService.ListCycles(ctx, project.ID)
	if err != nil {
		return formatter.Fail("PDSA_FETCH_ERROR", err)
	}

	if formatter.Quiet {
		fmt.Printf("%d\n", project.ID)
		return nil
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"project": project,
			"cycles":  cycles,
		})
	}

	md := report.Markdown(*project, cycles)
	if markdown {
		fmt.Print(md)
		return nil
	}

	rendered, err := report.Render(md, styles.CardWidth)
	if err != nil {
		// Fall back to the raw markdown
		slog.Warn("markdown rendering failed", "error", err)
		fmt.Print(md)
		return nil
	}
	fmt.Print(rendered)
	return nil
}
