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

// DeleteCmd returns the project delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a project and its PDSA cycles",
		Long: `Delete a project by ID. Every PDSA cycle of the project is deleted with it.
Requires confirmation unless --force, --quiet or --json is set.`,
		RunE: runDelete,
	}

	cmd.Flags().Int("id", 0, "Project ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("Error marking flag as required", "error", err)
	}
	cmd.Flags().Bool("force", false, "Skip confirmation")
	cli.OutputFlags(cmd, "Minimal output")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	projectID, _ := cmd.Flags().GetInt("id")
	force, _ := cmd.Flags().GetBool("force")
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
		return formatter.Fail("PROJECT_FETCH_ERROR", err)
	}

	// Ask for confirmation unless forced or machine output
	if !force && !formatter.Quiet && !formatter.JSON {
		title := fmt.Sprintf("Delete project #%d '%s' and all of its PDSA cycles?", project.ID, project.Title)
		confirmed, err := forms.Confirm(ctx, title, cliInstance.Colors)
		if err != nil && !errors.Is(err, forms.ErrCancelled) {
			return formatter.Fail("FORM_ERROR", err)
		}
		if !confirmed {
			fmt.Println("Cancelled")
			return nil
		}
	}

	removed, err := cliInstance.App.ProjectService.DeleteProject(ctx, projectID)
	if err != nil {
		return formatter.Fail("DELETE_ERROR", err)
	}

	if formatter.Quiet {
		return nil
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success":        true,
			"project_id":     projectID,
			"cycles_deleted": removed,
		})
	}

	fmt.Printf("✓ Project %d deleted successfully (%d PDSA cycles removed)\n", projectID, removed)
	return nil
}
