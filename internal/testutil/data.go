package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/thenoetrevino/qitrack/internal/models"
	"github.com/thenoetrevino/qitrack/internal/storage"
)

// TestToday is the fixed "today" used by test clocks
var TestToday = models.MustParseDate("2025-01-15")

// FixedClock returns a clock that always reports TestToday
func FixedClock() func() models.Date {
	return func() models.Date { return TestToday }
}

// SetupDataDir creates a temporary data directory. Non-empty contents are
// written as projects.csv and pdsa.csv; empty ones are left for Ensure to seed.
func SetupDataDir(t *testing.T, projectsCSV, pdsaCSV string) string {
	t.Helper()

	dir := t.TempDir()
	if projectsCSV != "" {
		WriteFile(t, filepath.Join(dir, storage.ProjectsFile), projectsCSV)
	}
	if pdsaCSV != "" {
		WriteFile(t, filepath.Join(dir, storage.PdsaFile), pdsaCSV)
	}
	return dir
}

// WriteFile writes content to path, failing the test on error
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// ReadProjectsFile parses the projects table persisted in dir
func ReadProjectsFile(t *testing.T, dir string) models.Projects {
	t.Helper()

	f, err := os.Open(filepath.Join(dir, storage.ProjectsFile))
	if err != nil {
		t.Fatalf("Failed to open projects table: %v", err)
	}
	defer func() { _ = f.Close() }()

	projects, err := storage.ReadProjects(f)
	if err != nil {
		t.Fatalf("Failed to parse projects table: %v", err)
	}
	return projects
}

// ReadCyclesFile parses the pdsa table persisted in dir
func ReadCyclesFile(t *testing.T, dir string) models.Cycles {
	t.Helper()

	f, err := os.Open(filepath.Join(dir, storage.PdsaFile))
	if err != nil {
		t.Fatalf("Failed to open pdsa table: %v", err)
	}
	defer func() { _ = f.Close() }()

	cycles, err := storage.ReadCycles(f)
	if err != nil {
		t.Fatalf("Failed to parse pdsa table: %v", err)
	}
	return cycles
}
