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
	projectservice "github.com/thenoetrevino/qitrack/internal/services/project"
)

// UpdateCmd returns the project update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a project",
		Long: `Update the fields of a project. Only the flags you pass are changed;
pass an empty value (e.g. --end-date="") to clear a field.

Examples:
  qitrack project update --id=2 --status="Completed" --end-date=2025-06-30
  qitrack project update --id=2 --tags="sepsis, ED"
  qitrack project update --id=2 --interactive
`,
		RunE: runUpdate,
	}

	cmd.Flags().Int("id", 0, "Project ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	fieldFlags(cmd)
	cli.OutputFlags(cmd, "Minimal output (ID only)")

	return cmd
}

func updateRequestFromFlags(cmd *cobra.Command, id int) (projectservice.UpdateProjectRequest, bool) {
	req := projectservice.UpdateProjectRequest{
		ID:               id,
		Title:            cli.ChangedString(cmd, "title"),
		SmartAim:         cli.ChangedString(cmd, "smart-aim"),
		ProblemStatement: cli.ChangedString(cmd, "problem"),
		Status:           cli.ChangedString(cmd, "status"),
		Metrics:          cli.ChangedString(cmd, "metrics"),
		Advisor:          cli.ChangedString(cmd, "advisor"),
		Service:          cli.ChangedString(cmd, "service"),
		StartDate:        cli.ChangedString(cmd, "start-date"),
		EndDate:          cli.ChangedString(cmd, "end-date"),
		Tags:             cli.ChangedString(cmd, "tags"),
	}

	changed := false
	for _, name := range []string{"title", "smart-aim", "problem", "status", "metrics", "advisor", "service", "start-date", "end-date", "tags"} {
		if cmd.Flags().Changed(name) {
			changed = true
			break
		}
	}
	return req, changed
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	projectID, _ := cmd.Flags().GetInt("id")
	interactive, _ := cmd.Flags().GetBool("interactive")
	formatter := cli.Formatter(cmd)

	req, changed := updateRequestFromFlags(cmd, projectID)
	if !changed && !interactive {
		return formatter.Usage("NO_UPDATES", "at least one field flag or --interactive is required")
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
		current, err := cliInstance.App.ProjectService.GetProject(ctx, projectID)
		if err != nil {
			return formatter.Fail("PROJECT_FETCH_ERROR", err)
		}
		values := forms.ProjectValuesFrom(*current)
		if err := forms.Run(ctx, forms.ProjectForm(&values), cliInstance.Colors); err != nil {
			if errors.Is(err, forms.ErrCancelled) {
				fmt.Println("Cancelled")
				return nil
			}
			return formatter.Fail("FORM_ERROR", err)
		}
		req = values.UpdateRequest(projectID)
	}

	project, err := cliInstance.App.ProjectService.UpdateProject(ctx, req)
	if err != nil {
		return formatter.Fail("PROJECT_UPDATE_ERROR", err)
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

	fmt.Printf("✓ Project %d updated successfully\n", project.ID)
	return nil
}
