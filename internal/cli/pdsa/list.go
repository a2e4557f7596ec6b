package pdsa

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/qitrack/internal/cli"
	"github.com/thenoetrevino/qitrack/internal/cli/styles"
)

// ListCmd returns the pdsa list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List PDSA cycles",
		Long: `List the PDSA cycles of one project in recorded order, or every cycle
when neither --project nor QITRACK_PROJECT is set.

Examples:
  qitrack pdsa list --project=1
  qitrack pdsa list --json
`,
		RunE: runList,
	}

	cmd.Flags().Int("project", 0, "Project ID (default: QITRACK_PROJECT, else all projects)")
	cli.OutputFlags(cmd, "Minimal output (cycle names only)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	formatter := cli.Formatter(cmd)

	projectID, err := cli.GetProjectID(cmd)
	if errors.Is(err, cli.ErrNoProject) {
		projectID = 0
	} else if err != nil {
		return formatter.Usage("NO_PROJECT", err.Error())
	}

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

	if projectID != 0 {
		if _, err := cliInstance.App.ProjectService.GetProject(ctx, projectID); err != nil {
			return formatter.Fail("PROJECT_FETCH_ERROR", err)
		}
	}

	cycles, err := cliInstance.App.PdsaService.ListCycles(ctx, projectID)
	if err != nil {
		return formatter.Fail("PDSA_FETCH_ERROR", err)
	}

	if formatter.Quiet {
		for _, c := range cycles {
			fmt.Println(c.CycleName)
		}
		return nil
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"cycles":  cycles,
		})
	}

	if len(cycles) == 0 {
		fmt.Println("No PDSA cycles found")
		return nil
	}

	fmt.Printf("PDSA cycles (%d):\n", len(cycles))
	for _, c := range cycles {
		fmt.Printf("  %s %s\n",
			styles.TitleStyle.Render(c.CycleName),
			styles.SubtitleStyle.Render(fmt.Sprintf("(project #%d, %s)", c.ProjectID, c.Date)))
		fmt.Printf("    %s\n", styles.RenderField("Plan", c.Plan))
		fmt.Printf("    %s\n", styles.RenderField("Do", c.Do))
		fmt.Printf("    %s\n", styles.RenderField("Study", c.Study))
		fmt.Printf("    %s\n", styles.RenderField("Act", c.Act))
	}
	return nil
}
