package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/qitrack/internal/cli"
	"github.com/thenoetrevino/qitrack/internal/storage"
)

// ImportCmd returns the data import subcommand
func ImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace projects and/or PDSA cycles with CSV files",
		Long: `Replace a whole table with the rows of a CSV file in the same column layout.
Nothing is merged: the imported file becomes the table. A file that cannot be
parsed leaves the table untouched. When both files are given, both are parsed
before anything is replaced: a bad file in either leaves both tables as they were.

Examples:
  qitrack data import --projects=projects.csv
  qitrack data import --projects=projects.csv --pdsa=pdsa.csv
`,
		RunE: runImport,
	}

	cmd.Flags().String("projects", "", "CSV file to import as the projects table")
	cmd.Flags().String("pdsa", "", "CSV file to import as the pdsa table")
	cli.OutputFlags(cmd, "No output on success")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	projectsFile, _ := cmd.Flags().GetString("projects")
	pdsaFile, _ := cmd.Flags().GetString("pdsa")
	formatter := cli.Formatter(cmd)

	if projectsFile == "" && pdsaFile == "" {
		return formatter.Usage("MISSING_FILE", "--projects or --pdsa is required")
	}

	projectsSrc, err := openImport(projectsFile)
	if err != nil {
		return formatter.Usage("FILE_ERROR", fmt.Sprintf("cannot open %s: %v", projectsFile, err))
	}
	defer closeImport(projectsSrc)

	pdsaSrc, err := openImport(pdsaFile)
	if err != nil {
		return formatter.Usage("FILE_ERROR", fmt.Sprintf("cannot open %s: %v", pdsaFile, err))
	}
	defer closeImport(pdsaSrc)

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

	nProjects, nCycles, err := cliInstance.App.Repo().ImportTables(ctx, reader(projectsSrc), reader(pdsaSrc))
	if err != nil {
		return formatter.Fail("IMPORT_ERROR", fmt.Errorf("%s: %w", failedFile(err, projectsFile, pdsaFile), err))
	}
	slog.Info("tables imported", "projects_file", projectsFile, "pdsa_file", pdsaFile)

	result := map[string]interface{}{"success": true}
	if projectsSrc != nil {
		result["projects"] = nProjects
	}
	if pdsaSrc != nil {
		result["cycles"] = nCycles
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(result)
	}
	if formatter.Quiet {
		return nil
	}
	if projectsSrc != nil {
		fmt.Printf("✓ Imported %d projects from %s\n", nProjects, projectsFile)
	}
	if pdsaSrc != nil {
		fmt.Printf("✓ Imported %d PDSA cycles from %s\n", nCycles, pdsaFile)
	}
	return nil
}

// openImport opens path for reading; an empty path yields a nil file
func openImport(path string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}
	return os.Open(path)
}

func closeImport(f *os.File) {
	if f == nil {
		return
	}
	if err := f.Close(); err != nil {
		slog.Error("Error closing import file", "error", err)
	}
}

// reader keeps a nil *os.File from becoming a non-nil io.Reader
func reader(f *os.File) io.Reader {
	if f == nil {
		return nil
	}
	return f
}

// failedFile names the file whose table failed to parse
func failedFile(err error, projectsFile, pdsaFile string) string {
	var perr *storage.ParseError
	if errors.As(err, &perr) && perr.Table == storage.TablePdsa {
		return pdsaFile
	}
	if projectsFile == "" {
		return pdsaFile
	}
	return projectsFile
}
