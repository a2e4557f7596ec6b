package pdsa

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/qitrack/internal/cli"
	"github.com/thenoetrevino/qitrack/internal/cli/forms"
)

// AddCmd returns the pdsa add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a PDSA cycle for a project",
		Long: `Append a Plan-Do-Study-Act cycle to a project. The date defaults to today.

Examples:
  qitrack pdsa add --project=1 --name="Cycle 1" \
    --plan="Post reminder signs at sinks" \
    --do="Signs posted on 3 units" \
    --study="Compliance rose from 60% to 68%" \
    --act="Adopt; add badge reminders next"

  qitrack pdsa add --project=1 --interactive
`,
		RunE: runAdd,
	}

	cmd.Flags().Int("project", 0, "Project ID (uses QITRACK_PROJECT env var if not specified)")
	cmd.Flags().String("name", "", "Cycle name")
	cmd.Flags().String("plan", "", "Plan")
	cmd.Flags().String("do", "", "Do")
	cmd.Flags().String("study", "", "Study")
	cmd.Flags().String("act", "", "Act")
	cmd.Flags().String("date", "", "Cycle date (YYYY-MM-DD, default today)")
	cmd.Flags().Bool("interactive", false, "Fill the fields in a form")
	cli.OutputFlags(cmd, "No output on success")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	interactive, _ := cmd.Flags().GetBool("interactive")
	formatter := cli.Formatter(cmd)

	projectID, err := cli.GetProjectID(cmd)
	if err != nil {
		return formatter.UsageWithSuggestion("NO_PROJECT", err.Error(),
			"Set project with: eval $(qitrack use project <project-id>)")
	}

	values := forms.CycleValues{}
	values.CycleName, _ = cmd.Flags().GetString("name")
	values.Plan, _ = cmd.Flags().GetString("plan")
	values.Do, _ = cmd.Flags().GetString("do")
	values.Study, _ = cmd.Flags().GetString("study")
	values.Act, _ = cmd.Flags().GetString("act")
	values.Date, _ = cmd.Flags().GetString("date")

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

	if interactive {
		if err := forms.Run(ctx, forms.CycleForm(&values), cliInstance.Colors); err != nil {
			if errors.Is(err, forms.ErrCancelled) {
				fmt.Println("Cancelled")
				return nil
			}
			return formatter.Fail("FORM_ERROR", err)
		}
	}

	cycle, err := cliInstance.App.PdsaService.AddCycle(ctx, values.AddRequest(projectID))
	if err != nil {
		return formatter.FailWithSuggestion("PDSA_CREATE_ERROR", err, "List projects with: qitrack project list")
	}

	if formatter.Quiet {
		return nil
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"cycle":   cycle,
		})
	}

	fmt.Printf("✓ PDSA cycle '%s' added to project %d (%s)\n", cycle.CycleName, cycle.ProjectID, cycle.Date)
	return nil
}
