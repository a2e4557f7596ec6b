package project

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/thenoetrevino/qitrack/internal/models"
	"github.com/thenoetrevino/qitrack/internal/repository"
	"github.com/thenoetrevino/qitrack/internal/validator"
)

// Service defines all project-related business operations
type Service interface {
	// Read operations
	ListProjects(ctx context.Context, filter Filter) (models.Projects, error)
	GetProject(ctx context.Context, id int) (*models.Project, error)
	Tags(ctx context.Context) ([]string, error)
	Statuses(ctx context.Context) ([]string, error)

	// Write operations
	CreateProject(ctx context.Context, req CreateProjectRequest) (*models.Project, error)
	UpdateProject(ctx context.Context, req UpdateProjectRequest) (*models.Project, error)
	DeleteProject(ctx context.Context, id int) (int, error)

	// Bulk transfer
	ImportProjects(ctx context.Context, src io.Reader) (int, error)
	ExportProjects(ctx context.Context, dst io.Writer) error
}

// Filter selects projects by status and tag; empty or "All" disables a predicate
type Filter struct {
	Status string
	Tag    string
}

// CreateProjectRequest encapsulates data for creating a project.
// Dates are YYYY-MM-DD strings; an empty status means In Progress and an
// empty start date means today.
type CreateProjectRequest struct {
	Title            string
	SmartAim         string
	ProblemStatement string
	Status           string
	Metrics          string
	Advisor          string
	Service          string
	StartDate        string
	EndDate          string
	Tags             string
}

// UpdateProjectRequest encapsulates data for updating a project.
// Nil fields keep their current value.
type UpdateProjectRequest struct {
	ID               int
	Title            *string
	SmartAim         *string
	ProblemStatement *string
	Status           *string
	Metrics          *string
	Advisor          *string
	Service          *string
	StartDate        *string
	EndDate          *string
	Tags             *string
}

// projectInput is the validated, fully merged form of a create or update
type projectInput struct {
	Title            string `json:"title"`
	SmartAim         string `json:"smart_aim"`
	ProblemStatement string `json:"problem_statement"`
	Status           string `json:"status" validate:"projectstatus"`
	Metrics          string `json:"metrics"`
	Advisor          string `json:"advisor"`
	Service          string `json:"service"`
	StartDate        string `json:"start_date" validate:"dateformat"`
	EndDate          string `json:"end_date" validate:"dateformat"`
	Tags             string `json:"tags"`
}

// updateInput holds only the fields an update sets; stored values that are left
// alone are not checked again
type updateInput struct {
	Status    *string `json:"status" validate:"omitnil,projectstatus"`
	StartDate *string `json:"start_date" validate:"omitnil,dateformat"`
	EndDate   *string `json:"end_date" validate:"omitnil,dateformat"`
}

// fields converts validated input to repository fields; dates were checked by the validator
func (in projectInput) fields() repository.ProjectFields {
	start, _ := models.ParseDate(in.StartDate)
	end, _ := models.ParseDate(in.EndDate)
	return repository.ProjectFields{
		Title:            in.Title,
		SmartAim:         in.SmartAim,
		ProblemStatement: in.ProblemStatement,
		Status:           models.Status(in.Status),
		Metrics:          in.Metrics,
		Advisor:          in.Advisor,
		Service:          in.Service,
		StartDate:        start,
		EndDate:          end,
		Tags:             models.NormalizeTags(in.Tags),
	}
}

// projectRepository defines the data access methods needed by the project service
// This interface is private to the service layer
type projectRepository interface {
	Projects() models.Projects
	Project(id int) (models.Project, error)
	AddProject(ctx context.Context, fields repository.ProjectFields) (models.Project, error)
	UpdateProject(ctx context.Context, id int, fields repository.ProjectFields) (models.Project, error)
	DeleteProject(ctx context.Context, id int) (int, error)
	ImportProjects(ctx context.Context, src io.Reader) (int, error)
	ExportProjects(dst io.Writer) error
}

// service implements Service interface with private repository
type service struct {
	repo      projectRepository
	validator *validator.Validator
	logger    *slog.Logger
}

// NewService creates a new project service
func NewService(repo projectRepository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		repo:      repo,
		validator: validator.New(),
		logger:    logger,
	}
}

// ListProjects returns the projects matching filter in storage order
func (s *service) ListProjects(ctx context.Context, filter Filter) (models.Projects, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	status, tag := filter.Status, filter.Tag
	if status == "" {
		status = models.FilterAll
	}
	if tag == "" {
		tag = models.FilterAll
	}
	return repository.FilterProjects(s.repo.Projects(), status, tag), nil
}

// GetProject retrieves a specific project
func (s *service) GetProject(ctx context.Context, id int) (*models.Project, error) {
	if id <= 0 {
		return nil, ErrInvalidProjectID
	}
	p, err := s.repo.Project(id)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Tags returns every distinct tag in use
func (s *service) Tags(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return repository.DistinctTags(s.repo.Projects()), nil
}

// Statuses returns every distinct status in use
func (s *service) Statuses(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return repository.DistinctStatuses(s.repo.Projects()), nil
}

// CreateProject validates req, appends the project and persists both tables
func (s *service) CreateProject(ctx context.Context, req CreateProjectRequest) (*models.Project, error) {
	in := projectInput{
		Title:            req.Title,
		SmartAim:         req.SmartAim,
		ProblemStatement: req.ProblemStatement,
		Status:           req.Status,
		Metrics:          req.Metrics,
		Advisor:          req.Advisor,
		Service:          req.Service,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		Tags:             req.Tags,
	}
	if in.Status == "" {
		in.Status = string(models.DefaultStatus)
	}
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	project, err := s.repo.AddProject(ctx, in.fields())
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Info("project created", "id", project.ID, "title", project.Title)
	return &project, nil
}

// UpdateProject merges req over the stored project and overwrites it
func (s *service) UpdateProject(ctx context.Context, req UpdateProjectRequest) (*models.Project, error) {
	if req.ID <= 0 {
		return nil, ErrInvalidProjectID
	}

	existing, err := s.repo.Project(req.ID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(updateInput{
		Status:    req.Status,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}); err != nil {
		return nil, err
	}

	in := projectInput{
		Title:            pick(req.Title, existing.Title),
		SmartAim:         pick(req.SmartAim, existing.SmartAim),
		ProblemStatement: pick(req.ProblemStatement, existing.ProblemStatement),
		Status:           pick(req.Status, string(existing.Status)),
		Metrics:          pick(req.Metrics, existing.Metrics),
		Advisor:          pick(req.Advisor, existing.Advisor),
		Service:          pick(req.Service, existing.Service),
		StartDate:        pick(req.StartDate, existing.StartDate.String()),
		EndDate:          pick(req.EndDate, existing.EndDate.String()),
		Tags:             pick(req.Tags, existing.Tags),
	}

	project, err := s.repo.UpdateProject(ctx, req.ID, in.fields())
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.logger.Info("project updated", "id", project.ID)
	return &project, nil
}

// DeleteProject removes a project and cascades to its PDSA cycles.
// It returns the number of cycles removed.
func (s *service) DeleteProject(ctx context.Context, id int) (int, error) {
	if id <= 0 {
		return 0, ErrInvalidProjectID
	}

	removed, err := s.repo.DeleteProject(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete project: %w", err)
	}

	s.logger.Info("project deleted", "id", id, "cycles_removed", removed)
	return removed, nil
}

// ImportProjects replaces every project with the CSV table read from src
func (s *service) ImportProjects(ctx context.Context, src io.Reader) (int, error) {
	n, err := s.repo.ImportProjects(ctx, src)
	if err != nil {
		return 0, fmt.Errorf("failed to import projects: %w", err)
	}
	s.logger.Info("projects imported", "count", n)
	return n, nil
}

// ExportProjects writes every project as CSV to dst
func (s *service) ExportProjects(ctx context.Context, dst io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.repo.ExportProjects(dst)
}

func pick(v *string, fallback string) string {
	if v != nil {
		return *v
	}
	return fallback
}
