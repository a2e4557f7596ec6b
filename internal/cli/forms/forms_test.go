package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/qitrack/internal/config"
	"github.com/thenoetrevino/qitrack/internal/models"
)

func TestProjectValues_RoundTrip(t *testing.T) {
	p := models.ExampleProject()
	v := ProjectValuesFrom(p)

	assert.Equal(t, "Example Project", v.Title)
	assert.Equal(t, "In Progress", v.Status)
	assert.Equal(t, "2024-04-01", v.EndDate)

	create := v.CreateRequest()
	assert.Equal(t, v.Title, create.Title)
	assert.Equal(t, v.StartDate, create.StartDate)
	assert.Equal(t, v.Tags, create.Tags)

	update := v.UpdateRequest(p.ID)
	assert.Equal(t, 1, update.ID)
	require.NotNil(t, update.Status)
	assert.Equal(t, "In Progress", *update.Status)
	require.NotNil(t, update.EndDate)
	assert.Equal(t, "2024-04-01", *update.EndDate)
}

func TestProjectValuesFrom_EmptyEndDate(t *testing.T) {
	v := ProjectValuesFrom(models.Project{ID: 2, StartDate: models.MustParseDate("2025-01-02")})
	assert.Equal(t, "2025-01-02", v.StartDate)
	assert.Equal(t, "", v.EndDate)
}

func TestCycleValues_AddRequest(t *testing.T) {
	v := CycleValues{CycleName: "Cycle 1", Plan: "p", Do: "d", Study: "s", Act: "a"}
	req := v.AddRequest(3)

	assert.Equal(t, 3, req.ProjectID)
	assert.Equal(t, "Cycle 1", req.CycleName)
	assert.Equal(t, "", req.Date)
}

func TestStatusOptions(t *testing.T) {
	options := StatusOptions()
	require.Len(t, options, len(models.Statuses()))
	assert.Equal(t, "In Progress", options[0].Value)
}

func TestValidateDate(t *testing.T) {
	assert.NoError(t, ValidateDate(""))
	assert.NoError(t, ValidateDate("2024-02-29"))
	assert.Error(t, ValidateDate("2024-02-30"))
	assert.Error(t, ValidateDate("Feb 1"))
}

func TestProjectForm_DefaultsStatus(t *testing.T) {
	v := &ProjectValues{}
	form := ProjectForm(v)

	assert.NotNil(t, form)
	assert.Equal(t, models.DefaultStatus.String(), v.Status)
}

func TestBuildersDoNotPanic(t *testing.T) {
	assert.NotNil(t, CycleForm(&CycleValues{}))

	var confirmed bool
	assert.NotNil(t, ConfirmForm("Delete?", &confirmed))
	assert.NotNil(t, Theme(config.DefaultColorScheme()))
	assert.NotNil(t, KeyMap())
}
