// Package repository owns the in-memory projects and pdsa collections and
// persists them through a storage.Store after every mutation.
//
// A Repository is built once per process and is not safe for concurrent use.
// Two processes sharing a data directory get last-write-wins.
package repository

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/thenoetrevino/qitrack/internal/models"
	"github.com/thenoetrevino/qitrack/internal/storage"
)

// ErrProjectNotFound is returned by mutations that reference a missing project
var ErrProjectNotFound = models.ErrProjectNotFound

// Repository holds both collections and the store they came from
type Repository struct {
	store    storage.Store
	projects models.Projects
	cycles   models.Cycles
	today    func() models.Date
	logger   *slog.Logger
}

// Option configures a Repository
type Option func(*Repository)

// WithClock overrides the source of "today" used for default start dates
func WithClock(today func() models.Date) Option {
	return func(r *Repository) {
		r.today = today
	}
}

// WithLogger sets the logger for the repository
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) {
		r.logger = logger
	}
}

// New creates an empty repository over store. Call Load before reading.
func New(store storage.Store, opts ...Option) *Repository {
	r := &Repository{
		store:    store,
		projects: models.Projects{},
		cycles:   models.Cycles{},
		today:    models.Today,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load ensures the store exists and replaces the in-memory collections with its content
func (r *Repository) Load(ctx context.Context) error {
	if err := r.store.Ensure(ctx); err != nil {
		return err
	}

	projects, cycles, err := r.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", r.store.Location(), err)
	}

	r.projects = projects
	r.cycles = cycles
	r.logger.Debug("loaded collections", "location", r.store.Location(),
		"projects", len(projects), "cycles", len(cycles))
	return nil
}

// Save writes both collections in full. Memory is not rolled back on failure.
func (r *Repository) Save(ctx context.Context) error {
	if err := r.store.Save(ctx, r.projects, r.cycles); err != nil {
		r.logger.Error("save failed", "location", r.store.Location(), "error", err)
		return err
	}
	return nil
}

// Projects returns a copy of the projects collection
func (r *Repository) Projects() models.Projects {
	return r.projects.Clone()
}

// Cycles returns a copy of the pdsa collection
func (r *Repository) Cycles() models.Cycles {
	return r.cycles.Clone()
}

// Project returns the project with id
func (r *Repository) Project(id int) (models.Project, error) {
	idx := r.projects.Find(id)
	if idx < 0 {
		return models.Project{}, ErrProjectNotFound
	}
	return r.projects[idx], nil
}

// Location describes where the store keeps its data
func (r *Repository) Location() string {
	return r.store.Location()
}

// AddProject appends a new project and saves
func (r *Repository) AddProject(ctx context.Context, fields ProjectFields) (models.Project, error) {
	var project models.Project
	r.projects, project = AddProject(r.projects, fields, r.today())
	if err := r.Save(ctx); err != nil {
		return project, err
	}
	return project, nil
}

// UpdateProject overwrites the editable fields of project id and saves
func (r *Repository) UpdateProject(ctx context.Context, id int, fields ProjectFields) (models.Project, error) {
	projects, err := UpdateProject(r.projects, id, fields)
	if err != nil {
		return models.Project{}, err
	}
	r.projects = projects
	if err := r.Save(ctx); err != nil {
		return models.Project{}, err
	}
	return r.projects[r.projects.Find(id)], nil
}

// DeleteProject removes project id with its cycles and saves.
// It returns how many cycles were cascade-deleted.
func (r *Repository) DeleteProject(ctx context.Context, id int) (int, error) {
	projects, cycles, err := DeleteProject(r.projects, r.cycles, id)
	if err != nil {
		return 0, err
	}
	removed := len(r.cycles) - len(cycles)
	r.projects, r.cycles = projects, cycles
	return removed, r.Save(ctx)
}

// AddPdsa appends a cycle and saves. The caller checks that its project exists.
func (r *Repository) AddPdsa(ctx context.Context, cycle models.PdsaCycle) error {
	r.cycles = AddPdsa(r.cycles, cycle)
	return r.Save(ctx)
}

// ReplacePdsaForProject swaps all cycles of projectID for rows and saves
func (r *Repository) ReplacePdsaForProject(ctx context.Context, projectID int, rows models.Cycles) error {
	r.cycles = ReplacePdsaForProject(r.cycles, projectID, rows)
	return r.Save(ctx)
}

// ImportProjects replaces the whole projects collection with the table read from src.
// Nothing changes in memory or on disk when src does not parse.
func (r *Repository) ImportProjects(ctx context.Context, src io.Reader) (int, error) {
	n, _, err := r.ImportTables(ctx, src, nil)
	return n, err
}

// ImportCycles replaces the whole pdsa collection with the table read from src
func (r *Repository) ImportCycles(ctx context.Context, src io.Reader) (int, error) {
	_, n, err := r.ImportTables(ctx, nil, src)
	return n, err
}

// ImportTables replaces the collections whose reader is non-nil and saves once.
// Both tables are parsed before either is replaced, so a parse failure in one
// leaves both collections untouched.
func (r *Repository) ImportTables(ctx context.Context, projectsSrc, cyclesSrc io.Reader) (int, int, error) {
	projects, cycles := r.projects, r.cycles

	if projectsSrc != nil {
		parsed, err := storage.ReadProjects(projectsSrc)
		if err != nil {
			return 0, 0, err
		}
		projects = parsed
	}
	if cyclesSrc != nil {
		parsed, err := storage.ReadCycles(cyclesSrc)
		if err != nil {
			return 0, 0, err
		}
		cycles = parsed
	}

	r.projects, r.cycles = projects, cycles
	r.logger.Debug("imported tables", "projects", len(projects), "cycles", len(cycles))
	return len(projects), len(cycles), r.Save(ctx)
}

// ExportProjects writes the projects collection to dst in the storage layout
func (r *Repository) ExportProjects(dst io.Writer) error {
	return storage.WriteProjects(dst, r.projects)
}

// ExportCycles writes the pdsa collection to dst in the storage layout
func (r *Repository) ExportCycles(dst io.Writer) error {
	return storage.WriteCycles(dst, r.cycles)
}

// Close releases the underlying store
func (r *Repository) Close() error {
	return r.store.Close()
}
