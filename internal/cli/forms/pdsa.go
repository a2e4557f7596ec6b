package forms

import (
	"charm.land/huh/v2"
	"github.com/thenoetrevino/qitrack/internal/models"
	pdsaservice "github.com/thenoetrevino/qitrack/internal/services/pdsa"
)

// CycleValues holds the fields of a new PDSA cycle as form strings
type CycleValues struct {
	CycleName string
	Plan      string
	Do        string
	Study     string
	Act       string
	Date      string
}

// AddRequest converts the values to an add request for projectID
func (v CycleValues) AddRequest(projectID int) pdsaservice.AddCycleRequest {
	return pdsaservice.AddCycleRequest{
		ProjectID: projectID,
		CycleName: v.CycleName,
		Plan:      v.Plan,
		Do:        v.Do,
		Study:     v.Study,
		Act:       v.Act,
		Date:      v.Date,
	}
}

// CycleForm creates a huh form for recording one PDSA cycle
func CycleForm(v *CycleValues) *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Key("cycle_name").
			Title("Cycle Name").
			Placeholder("e.g. Cycle 1").
			Value(&v.CycleName),

		huh.NewText().Key("plan").Title("Plan").Lines(2).Value(&v.Plan),
		huh.NewText().Key("do").Title("Do").Lines(2).Value(&v.Do),
		huh.NewText().Key("study").Title("Study").Lines(2).Value(&v.Study),
		huh.NewText().Key("act").Title("Act").Lines(2).Value(&v.Act),

		huh.NewInput().
			Key("date").
			Title("Date").
			Description("Leave empty for today").
			Placeholder(models.DateLayout).
			Validate(ValidateDate).
			Value(&v.Date),
	}

	return huh.NewForm(huh.NewGroup(fields...))
}
