package forms

import (
	"charm.land/huh/v2"
	"github.com/thenoetrevino/qitrack/internal/models"
	projectservice "github.com/thenoetrevino/qitrack/internal/services/project"
)

// ProjectValues holds the editable project fields as form strings
type ProjectValues struct {
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

// ProjectValuesFrom seeds form values from an existing project
func ProjectValuesFrom(p models.Project) ProjectValues {
	return ProjectValues{
		Title:            p.Title,
		SmartAim:         p.SmartAim,
		ProblemStatement: p.ProblemStatement,
		Status:           string(p.Status),
		Metrics:          p.Metrics,
		Advisor:          p.Advisor,
		Service:          p.Service,
		StartDate:        p.StartDate.String(),
		EndDate:          p.EndDate.String(),
		Tags:             p.Tags,
	}
}

// CreateRequest converts the values to a create request
func (v ProjectValues) CreateRequest() projectservice.CreateProjectRequest {
	return projectservice.CreateProjectRequest{
		Title:            v.Title,
		SmartAim:         v.SmartAim,
		ProblemStatement: v.ProblemStatement,
		Status:           v.Status,
		Metrics:          v.Metrics,
		Advisor:          v.Advisor,
		Service:          v.Service,
		StartDate:        v.StartDate,
		EndDate:          v.EndDate,
		Tags:             v.Tags,
	}
}

// UpdateRequest converts the values to an update request that overwrites every field
func (v ProjectValues) UpdateRequest(id int) projectservice.UpdateProjectRequest {
	return projectservice.UpdateProjectRequest{
		ID:               id,
		Title:            &v.Title,
		SmartAim:         &v.SmartAim,
		ProblemStatement: &v.ProblemStatement,
		Status:           &v.Status,
		Metrics:          &v.Metrics,
		Advisor:          &v.Advisor,
		Service:          &v.Service,
		StartDate:        &v.StartDate,
		EndDate:          &v.EndDate,
		Tags:             &v.Tags,
	}
}

// StatusOptions returns the project statuses as select options
func StatusOptions() []huh.Option[string] {
	statuses := models.Statuses()
	options := make([]huh.Option[string], len(statuses))
	for i, s := range statuses {
		options[i] = huh.NewOption(s.String(), s.String())
	}
	return options
}

// ValidateDate accepts an empty string or a YYYY-MM-DD date
func ValidateDate(s string) error {
	_, err := models.ParseDate(s)
	return err
}

// ProjectForm creates a two-page huh form for adding or editing a project
func ProjectForm(v *ProjectValues) *huh.Form {
	if v.Status == "" {
		v.Status = models.DefaultStatus.String()
	}

	overview := huh.NewGroup(
		huh.NewInput().
			Key("title").
			Title("Title").
			Placeholder("Enter project title...").
			Value(&v.Title),

		huh.NewText().
			Key("problem_statement").
			Title("Problem Statement").
			Lines(3).
			Value(&v.ProblemStatement),

		huh.NewText().
			Key("smart_aim").
			Title("SMART Aim").
			Lines(3).
			Value(&v.SmartAim),

		huh.NewText().
			Key("metrics").
			Title("Metrics").
			Lines(2).
			Value(&v.Metrics),
	)

	details := huh.NewGroup(
		huh.NewSelect[string]().
			Key("status").
			Title("Status").
			Options(StatusOptions()...).
			Value(&v.Status),

		huh.NewInput().
			Key("advisor").
			Title("Advisor").
			Value(&v.Advisor),

		huh.NewInput().
			Key("service").
			Title("Service").
			Value(&v.Service),

		huh.NewInput().
			Key("start_date").
			Title("Start Date").
			Placeholder(models.DateLayout).
			Validate(ValidateDate).
			Value(&v.StartDate),

		huh.NewInput().
			Key("end_date").
			Title("End Date (optional)").
			Placeholder(models.DateLayout).
			Validate(ValidateDate).
			Value(&v.EndDate),

		huh.NewInput().
			Key("tags").
			Title("Tags").
			Description("Comma separated").
			Value(&v.Tags),
	)

	return huh.NewForm(overview, details)
}
