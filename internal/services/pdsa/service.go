package pdsa

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/thenoetrevino/qitrack/internal/models"
	"github.com/thenoetrevino/qitrack/internal/repository"
	"github.com/thenoetrevino/qitrack/internal/validator"
)

// Service defines all PDSA-cycle business operations
type Service interface {
	// ListCycles returns the cycles of one project, or every cycle when projectID is 0
	ListCycles(ctx context.Context, projectID int) (models.Cycles, error)

	AddCycle(ctx context.Context, req AddCycleRequest) (*models.PdsaCycle, error)

	// ReplaceCycles swaps every cycle of a project for rows; cycles have no ID,
	// so this is the only way to edit or remove individual rows
	ReplaceCycles(ctx context.Context, projectID int, rows models.Cycles) (int, error)

	ImportCycles(ctx context.Context, src io.Reader) (int, error)
	ExportCycles(ctx context.Context, dst io.Writer) error
}

// AddCycleRequest encapsulates data for adding a cycle; an empty date means today
type AddCycleRequest struct {
	ProjectID int    `json:"project_id" validate:"gt=0"`
	CycleName string `json:"cycle_name"`
	Plan      string `json:"plan"`
	Do        string `json:"do"`
	Study     string `json:"study"`
	Act       string `json:"act"`
	Date      string `json:"date" validate:"dateformat"`
}

// cycleRepository defines the data access methods needed by the pdsa service
type cycleRepository interface {
	Cycles() models.Cycles
	Project(id int) (models.Project, error)
	AddPdsa(ctx context.Context, cycle models.PdsaCycle) error
	ReplacePdsaForProject(ctx context.Context, projectID int, rows models.Cycles) error
	ImportCycles(ctx context.Context, src io.Reader) (int, error)
	ExportCycles(dst io.Writer) error
}

type service struct {
	repo      cycleRepository
	validator *validator.Validator
	today     func() models.Date
	logger    *slog.Logger
}

// NewService creates a new pdsa service
func NewService(repo cycleRepository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		repo:      repo,
		validator: validator.New(),
		today:     models.Today,
		logger:    logger,
	}
}

func (s *service) ListCycles(ctx context.Context, projectID int) (models.Cycles, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if projectID < 0 {
		return nil, ErrInvalidProjectID
	}
	if projectID == 0 {
		return s.repo.Cycles(), nil
	}
	return repository.CyclesForProject(s.repo.Cycles(), projectID), nil
}

func (s *service) AddCycle(ctx context.Context, req AddCycleRequest) (*models.PdsaCycle, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if _, err := s.repo.Project(req.ProjectID); err != nil {
		return nil, fmt.Errorf("project %d: %w", req.ProjectID, err)
	}

	date, _ := models.ParseDate(req.Date)
	if date.IsZero() {
		date = s.today()
	}

	cycle := models.PdsaCycle{
		ProjectID: req.ProjectID,
		CycleName: req.CycleName,
		Plan:      req.Plan,
		Do:        req.Do,
		Study:     req.Study,
		Act:       req.Act,
		Date:      date,
	}
	if err := s.repo.AddPdsa(ctx, cycle); err != nil {
		return nil, fmt.Errorf("failed to add pdsa cycle: %w", err)
	}

	s.logger.Info("pdsa cycle added", "project_id", cycle.ProjectID, "cycle", cycle.CycleName)
	return &cycle, nil
}

func (s *service) ReplaceCycles(ctx context.Context, projectID int, rows models.Cycles) (int, error) {
	if projectID <= 0 {
		return 0, ErrInvalidProjectID
	}
	if _, err := s.repo.Project(projectID); err != nil {
		return 0, fmt.Errorf("project %d: %w", projectID, err)
	}

	if err := s.repo.ReplacePdsaForProject(ctx, projectID, rows); err != nil {
		return 0, fmt.Errorf("failed to replace pdsa cycles: %w", err)
	}

	s.logger.Info("pdsa cycles replaced", "project_id", projectID, "count", len(rows))
	return len(rows), nil
}

func (s *service) ImportCycles(ctx context.Context, src io.Reader) (int, error) {
	n, err := s.repo.ImportCycles(ctx, src)
	if err != nil {
		return 0, fmt.Errorf("failed to import pdsa cycles: %w", err)
	}
	s.logger.Info("pdsa cycles imported", "count", n)
	return n, nil
}

func (s *service) ExportCycles(ctx context.Context, dst io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.repo.ExportCycles(dst)
}
