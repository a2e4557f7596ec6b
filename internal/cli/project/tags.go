package project

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/qitrack/internal/cli"
	"github.com/thenoetrevino/qitrack/internal/cli/styles"
	"github.com/thenoetrevino/qitrack/internal/models"
)

// TagsCmd returns the project tags subcommand
func TagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List every tag in use",
		Long:  "List the distinct tags used by any project, sorted. These are the choices for --tag filters.",
		RunE:  runTags,
	}

	cli.OutputFlags(cmd, "Minimal output (one tag per line)")

	return cmd
}

// StatusesCmd returns the project statuses subcommand
func StatusesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "statuses",
		Short: "List every status in use",
		Long:  "List the distinct statuses used by any project, sorted. These are the choices for --status filters.",
		RunE:  runStatuses,
	}

	cli.OutputFlags(cmd, "Minimal output (one status per line)")

	return cmd
}

func runTags(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
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

	tags, err := cliInstance.App.ProjectService.Tags(ctx)
	if err != nil {
		return formatter.Fail("TAG_FETCH_ERROR", err)
	}

	return printChoices(formatter, "tags", tags, func(tag string) string {
		return styles.RenderTags([]string{tag})
	})
}

func runStatuses(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
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

	statuses, err := cliInstance.App.ProjectService.Statuses(ctx)
	if err != nil {
		return formatter.Fail("STATUS_FETCH_ERROR", err)
	}

	return printChoices(formatter, "statuses", statuses, func(status string) string {
		return styles.RenderStatus(models.Status(status))
	})
}

// printChoices prints filter choices; human output leads with the "All" sentinel
func printChoices(formatter *cli.OutputFormatter, key string, values []string, render func(string) string) error {
	if formatter.Quiet {
		for _, v := range values {
			fmt.Println(v)
		}
		return nil
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			key:       values,
		})
	}

	if len(values) == 0 {
		fmt.Printf("No %s in use\n", key)
		return nil
	}

	fmt.Printf("  %s\n", models.FilterAll)
	for _, v := range values {
		fmt.Printf("  %s\n", render(v))
	}
	return nil
}
