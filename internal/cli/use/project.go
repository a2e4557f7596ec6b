package use

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/qitrack/internal/cli"
)

// ProjectCmd returns the use project subcommand
func ProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project [project-id]",
		Short: "Set project context for current shell session",
		Long: `Set the current project context using an environment variable.
This command outputs shell commands that should be evaluated:

  eval $(qitrack use project 3)              # Use project 3
  eval $(qitrack use project --clear)        # Clear project context
  qitrack use project --show                 # Show current project

The QITRACK_PROJECT environment variable will be set in your current shell
session only. The --project flag on pdsa commands takes precedence over
this environment variable.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUseProject,
	}

	cmd.Flags().Bool("clear", false, "Clear the current project context")
	cmd.Flags().Bool("show", false, "Show the current project context")
	cmd.Flags().Bool("dry-run", false, "Show what would be exported without outputting shell commands")

	return cmd
}

func runUseProject(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	clearFlag, _ := cmd.Flags().GetBool("clear")
	showFlag, _ := cmd.Flags().GetBool("show")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	formatter := &cli.OutputFormatter{}

	if showFlag {
		return showCurrentProject(cmd)
	}

	if clearFlag {
		if dryRun {
			fmt.Fprintf(os.Stderr, "Would clear %s\n", cli.EnvProject)
			return nil
		}
		fmt.Printf("unset %s\n", cli.EnvProject)
		fmt.Fprintf(os.Stderr, "Cleared project context\n")
		return nil
	}

	if len(args) == 0 {
		return formatter.Usage("NO_PROJECT", "project ID required\nUsage: eval $(qitrack use project <project-id>)")
	}

	projectID, err := strconv.Atoi(args[0])
	if err != nil {
		return formatter.Usage("INVALID_PROJECT_ID", fmt.Sprintf("invalid project ID: %s", args[0]))
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

	// Validate project exists
	project, err := cliInstance.App.ProjectService.GetProject(ctx, projectID)
	if err != nil {
		return formatter.FailWithSuggestion("PROJECT_FETCH_ERROR", err, "Use 'qitrack project list' to see available projects")
	}

	// Output shell export command (to stdout for eval)
	if dryRun {
		fmt.Fprintf(os.Stderr, "Would set %s=%d (%s)\n", cli.EnvProject, projectID, project.Title)
		return nil
	}

	fmt.Printf("export %s=%d\n", cli.EnvProject, projectID)
	fmt.Fprintf(os.Stderr, "Now using project %d: %s\n", projectID, project.Title)

	return nil
}

func showCurrentProject(cmd *cobra.Command) error {
	currentProject := os.Getenv(cli.EnvProject)
	if currentProject == "" {
		fmt.Println("No project context set")
		fmt.Println("Use 'eval $(qitrack use project <project-id>)' to set one")
		return nil
	}

	projectID, err := strconv.Atoi(currentProject)
	if err != nil {
		fmt.Printf("Invalid project context: %s\n", currentProject)
		return nil
	}

	// Initialize CLI
	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return (&cli.OutputFormatter{}).Fail("INITIALIZATION_ERROR", err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
	}()

	project, err := cliInstance.App.ProjectService.GetProject(cmd.Context(), projectID)
	if err != nil {
		fmt.Printf("Current project: %d (project not found)\n", projectID)
		return nil
	}

	fmt.Printf("Current project: %d (%s)\n", projectID, project.Title)
	return nil
}
