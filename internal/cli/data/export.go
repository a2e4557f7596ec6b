package data

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/qitrack/internal/cli"
)

// ExportCmd returns the data export subcommand
func ExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write projects and/or PDSA cycles as CSV",
		Long: `Write a table as CSV in the same column layout it is stored and imported in.
Use - as the file name to write to stdout.

Examples:
  qitrack data export --projects=backup/projects.csv --pdsa=backup/pdsa.csv
  qitrack data export --projects=- | column -s, -t
`,
		RunE: runExport,
	}

	cmd.Flags().String("projects", "", "Destination for the projects table (- for stdout)")
	cmd.Flags().String("pdsa", "", "Destination for the pdsa table (- for stdout)")
	cli.OutputFlags(cmd, "No output besides the exported data")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	projectsFile, _ := cmd.Flags().GetString("projects")
	pdsaFile, _ := cmd.Flags().GetString("pdsa")
	formatter := cli.Formatter(cmd)

	if projectsFile == "" && pdsaFile == "" {
		return formatter.Usage("MISSING_FILE", "--projects or --pdsa is required")
	}
	if projectsFile == "-" && pdsaFile == "-" {
		return formatter.Usage("STDOUT_CONFLICT", "only one table can be written to stdout")
	}
	if formatter.JSON && (projectsFile == "-" || pdsaFile == "-") {
		return formatter.Usage("STDOUT_CONFLICT", "--json cannot be combined with writing a table to stdout")
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

	written := map[string]string{}

	if projectsFile != "" {
		if err := exportTo(projectsFile, func(w io.Writer) error {
			return cliInstance.App.ProjectService.ExportProjects(ctx, w)
		}); err != nil {
			return formatter.Fail("EXPORT_ERROR", err)
		}
		written["projects"] = projectsFile
	}

	if pdsaFile != "" {
		if err := exportTo(pdsaFile, func(w io.Writer) error {
			return cliInstance.App.PdsaService.ExportCycles(ctx, w)
		}); err != nil {
			return formatter.Fail("EXPORT_ERROR", err)
		}
		written["pdsa"] = pdsaFile
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"files":   written,
		})
	}

	if !formatter.Quiet {
		for table, path := range written {
			if path != "-" {
				fmt.Fprintf(os.Stderr, "✓ Exported %s to %s\n", table, path)
			}
		}
	}
	return nil
}

// exportTo writes to stdout for "-", otherwise creates or truncates path
func exportTo(path string, write func(io.Writer) error) (err error) {
	if path == "-" {
		return write(os.Stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("cannot close %s: %w", path, closeErr)
		}
	}()
	return write(f)
}
