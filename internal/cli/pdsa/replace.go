package pdsa

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/qitrack/internal/cli"
	"github.com/thenoetrevino/qitrack/internal/storage"
)

// ReplaceCmd returns the pdsa replace subcommand
func ReplaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replace",
		Short: "Replace every PDSA cycle of a project",
		Long: `Replace all PDSA cycles of a project with the rows of a CSV file.
This is how individual cycles are edited or removed: export them, edit the
file, then replace. The file uses the pdsa table layout; its project_id
column is overwritten with --project.

Examples:
  qitrack pdsa list --project=2 --json   # inspect
  qitrack pdsa replace --project=2 --file=cycles.csv
  cat cycles.csv | qitrack pdsa replace --project=2 --file=-
`,
		RunE: runReplace,
	}

	cmd.Flags().Int("project", 0, "Project ID (uses QITRACK_PROJECT env var if not specified)")
	cmd.Flags().String("file", "", "CSV file with the new cycles, - for stdin (required)")
	if err := cmd.MarkFlagRequired("file"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cli.OutputFlags(cmd, "Minimal output (cycle count only)")

	return cmd
}

func runReplace(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	file, _ := cmd.Flags().GetString("file")
	formatter := cli.Formatter(cmd)

	projectID, err := cli.GetProjectID(cmd)
	if err != nil {
		return formatter.UsageWithSuggestion("NO_PROJECT", err.Error(),
			"Set project with: eval $(qitrack use project <project-id>)")
	}

	var src io.Reader = cmd.InOrStdin()
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return formatter.Usage("FILE_ERROR", fmt.Sprintf("cannot open %s: %v", file, err))
		}
		defer func() {
			if err := f.Close(); err != nil {
				slog.Error("Error closing input file", "error", err)
			}
		}()
		src = f
	}

	rows, err := storage.ReadCycles(src)
	if err != nil {
		return formatter.Fail("PARSE_ERROR", err)
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

	count, err := cliInstance.App.PdsaService.ReplaceCycles(ctx, projectID, rows)
	if err != nil {
		return formatter.Fail("PDSA_REPLACE_ERROR", err)
	}

	if formatter.Quiet {
		fmt.Printf("%d\n", count)
		return nil
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success":    true,
			"project_id": projectID,
			"cycles":     count,
		})
	}

	fmt.Printf("✓ Project %d now has %d PDSA cycles\n", projectID, count)
	return nil
}
