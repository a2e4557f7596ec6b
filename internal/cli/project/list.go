package project

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/qitrack/internal/cli"
	"github.com/thenoetrevino/qitrack/internal/models"
	projectservice "github.com/thenoetrevino/qitrack/internal/services/project"
)

// ListCmd returns the project list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Long: `List projects in storage order, optionally filtered by status and tag.

The status filter must match exactly. The tag filter matches any project whose
tags contain the given text, so "hand" matches "hand hygiene".

Examples:
  qitrack project list
  qitrack project list --status="Completed"
  qitrack project list --tag=hygiene --json
`,
		RunE: runList,
	}

	cmd.Flags().String("status", models.FilterAll, "Only projects with this status")
	cmd.Flags().String("tag", models.FilterAll, "Only projects whose tags contain this text")
	cli.OutputFlags(cmd, "Minimal output (IDs only)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	status, _ := cmd.Flags().GetString("status")
	tag, _ := cmd.Flags().GetString("tag")
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

	projects, err := cliInstance.App.ProjectService.ListProjects(ctx, projectservice.Filter{Status: status, Tag: tag})
	if err != nil {
		return formatter.Fail("PROJECT_FETCH_ERROR", err)
	}

	if formatter.Quiet {
		for _, p := range projects {
			fmt.Printf("%d\n", p.ID)
		}
		return nil
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success":  true,
			"projects": projects,
		})
	}

	if len(projects) == 0 {
		fmt.Println("No projects found")
		return nil
	}

	fmt.Printf("Projects (%d):\n", len(projects))
	for _, p := range projects {
		printProjectLine(p)
	}
	return nil
}
