package project

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

// CreateCmd returns the project create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		Long: `Create a new QI project. The status defaults to "In Progress" and the
start date to today.

Examples:
  # Simple project (human-readable output)
  qitrack project create --title="Sepsis bundle compliance"

  # JSON output for agents
  qitrack project create --title="Sepsis bundle compliance" --json

  # Quiet mode for bash capture
  PROJECT_ID=$(qitrack project create --title="Falls" --tags="safety, nursing" --quiet)

  # Fill every field in a form
  qitrack project create --interactive
`,
		RunE: runCreate,
	}

	fieldFlags(cmd)
	cli.OutputFlags(cmd, "Minimal output (ID only)")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	interactive, _ := cmd.Flags().GetBool("interactive")
	formatter := cli.Formatter(cmd)

	values := forms.ProjectValues{}
	values.Title, _ = cmd.Flags().GetString("title")
	values.SmartAim, _ = cmd.Flags().GetString("smart-aim")
	values.ProblemStatement, _ = cmd.Flags().GetString("problem")
	values.Status, _ = cmd.Flags().GetString("status")
	values.Metrics, _ = cmd.Flags().GetString("metrics")
	values.Advisor, _ = cmd.Flags().GetString("advisor")
	values.Service, _ = cmd.Flags().GetString("service")
	values.StartDate, _ = cmd.Flags().GetString("start-date")
	values.EndDate, _ = cmd.Flags().GetString("end-date")
	values.Tags, _ = cmd.Flags().GetString("tags")

	if !interactive && values.Title == "" {
		return formatter.Usage("MISSING_TITLE", "--title is required unless --interactive is set")
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

	if interactive {
		if err := forms.Run(ctx, forms.ProjectForm(&values), cliInstance.Colors); err != nil {
			if errors.Is(err, forms.ErrCancelled) {
				fmt.Println("Cancelled")
				return nil
			}
			return formatter.Fail("FORM_ERROR", err)
		}
	}

	project, err := cliInstance.App.ProjectService.CreateProject(ctx, values.CreateRequest())
	if err != nil {
		return formatter.Fail("PROJECT_CREATE_ERROR", err)
	}

	if formatter.Quiet {
		fmt.Printf("%d\n", project.ID)
		return nil
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"project": project,
		})
	}

	fmt.Printf("✓ Project '%s' created successfully (ID: %d)\n", project.Title, project.ID)
	return nil
}
