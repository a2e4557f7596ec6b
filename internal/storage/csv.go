package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/thenoetrevino/qitrack/internal/models"
)

// File names inside the data directory
const (
	ProjectsFile = "projects.csv"
	PdsaFile     = "pdsa.csv"
)

// CSVStore keeps each table in its own CSV file under one directory.
// Files are opened and closed within each call.
type CSVStore struct {
	dir string
}

// NewCSVStore returns a store rooted at dir
func NewCSVStore(dir string) *CSVStore {
	return &CSVStore{dir: dir}
}

// Location returns the data directory
func (s *CSVStore) Location() string {
	return s.dir
}

// ProjectsPath is the full path of the projects table
func (s *CSVStore) ProjectsPath() string {
	return filepath.Join(s.dir, ProjectsFile)
}

// PdsaPath is the full path of the pdsa table
func (s *CSVStore) PdsaPath() string {
	return filepath.Join(s.dir, PdsaFile)
}

// Ensure creates the directory and seeds whichever table files are missing
func (s *CSVStore) Ensure(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: create directory %s: %w", ErrStorageUnavailable, s.dir, err)
	}

	seeded, err := createExclusive(s.ProjectsPath(), func(w io.Writer) error {
		return WriteProjects(w, models.Projects{models.ExampleProject()})
	})
	if err != nil {
		return err
	}
	if seeded {
		slog.Info("seeded projects table", "path", s.ProjectsPath())
	}

	seeded, err = createExclusive(s.PdsaPath(), func(w io.Writer) error {
		return WriteCycles(w, nil)
	})
	if err != nil {
		return err
	}
	if seeded {
		slog.Info("created empty pdsa table", "path", s.PdsaPath())
	}

	return nil
}

// createExclusive writes a new file only if path does not exist yet
func createExclusive(path string, write func(io.Writer) error) (bool, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: create %s: %w", ErrStorageUnavailable, path, err)
	}

	if err := write(f); err != nil {
		_ = f.Close()
		return false, fmt.Errorf("%w: seed %s: %w", ErrStorageUnavailable, path, err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("%w: close %s: %w", ErrStorageUnavailable, path, err)
	}
	return true, nil
}

// Load parses both files
func (s *CSVStore) Load(ctx context.Context) (models.Projects, models.Cycles, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var projects models.Projects
	err := readFile(s.ProjectsPath(), func(r io.Reader) error {
		var err error
		projects, err = ReadProjects(r)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	var cycles models.Cycles
	err = readFile(s.PdsaPath(), func(r io.Reader) error {
		var err error
		cycles, err = ReadCycles(r)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	return projects, cycles, nil
}

func readFile(path string, read func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrStorageUnavailable, path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("error closing file", "path", path, "error", err)
		}
	}()
	return read(f)
}

// Save truncates and rewrites both files. A failure part way leaves the files in an unknown state.
func (s *CSVStore) Save(ctx context.Context, projects models.Projects, cycles models.Cycles) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := writeFile(s.ProjectsPath(), func(w io.Writer) error {
		return WriteProjects(w, projects)
	}); err != nil {
		return err
	}

	return writeFile(s.PdsaPath(), func(w io.Writer) error {
		return WriteCycles(w, cycles)
	})
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrStorageWrite, path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: %s: %w", ErrStorageWrite, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrStorageWrite, path, err)
	}
	return nil
}

// Close is a no-op; CSVStore holds no open handles
func (s *CSVStore) Close() error {
	return nil
}

var _ Store = (*CSVStore)(nil)
