package data

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/qitrack/internal/cli"
)

// InitCmd returns the data init subcommand
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the data directory and seed missing tables",
		Long: `Create the data directory if needed. A missing projects table is created
with one example project; a missing pdsa table is created empty. Existing
tables are never overwritten.`,
		RunE: runInit,
	}

	cli.OutputFlags(cmd, "Minimal output (location only)")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.Formatter(cmd)

	// Opening the CLI ensures and loads storage
	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail("INITIALIZATION_ERROR", err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
	}()

	repo := cliInstance.App.Repo()
	location := repo.Location()
	projects, cycles := len(repo.Projects()), len(repo.Cycles())

	if formatter.Quiet {
		fmt.Println(location)
		return nil
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success":  true,
			"location": location,
			"projects": projects,
			"cycles":   cycles,
		})
	}

	fmt.Printf("✓ Data ready at %s (%d projects, %d PDSA cycles)\n", location, projects, cycles)
	return nil
}
