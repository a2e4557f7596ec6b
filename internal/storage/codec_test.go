package storage

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/qitrack/internal/models"
)

const projectsHeader = "id,title,smart_aim,problem_statement,status,metrics,advisor,service,start_date,end_date,tags\n"

func TestProjectsRoundTrip(t *testing.T) {
	in := models.Projects{
		models.ExampleProject(),
		{
			ID:               7,
			Title:            "Sepsis, \"bundle\" timing",
			SmartAim:         "multi\nline aim",
			ProblemStatement: "",
			Status:           models.StatusOnHold,
			StartDate:        models.MustParseDate("2025-02-03"),
			Tags:             "sepsis, ed",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteProjects(&buf, in))
	assert.True(t, strings.HasPrefix(buf.String(), projectsHeader))

	out, err := ReadProjects(&buf)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestCyclesRoundTrip(t *testing.T) {
	in := models.Cycles{
		{ProjectID: 1, CycleName: "Cycle 1", Plan: "p", Do: "d", Study: "s", Act: "a", Date: models.MustParseDate("2024-02-01")},
		{ProjectID: 2, CycleName: "Cycle, with comma"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCycles(&buf, in))

	out, err := ReadCycles(&buf)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestCyclesRoundTrip_MultiLineText(t *testing.T) {
	in := models.Cycles{
		{ProjectID: 3, CycleName: "Cycle 2", Plan: "audit\nfeedback\n", Study: "line1\n\nline3", Act: "adopt"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCycles(&buf, in))

	out, err := ReadCycles(&buf)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestReadProjects_FoldsCRLFInsideFields(t *testing.T) {
	p := models.ExampleProject()
	p.SmartAim = "line1\r\nline2"

	var buf bytes.Buffer
	require.NoError(t, WriteProjects(&buf, models.Projects{p}))

	out, err := ReadProjects(&buf)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, models.NormalizeText(p.SmartAim), out[0].SmartAim)
	assert.Equal(t, "line1\nline2", out[0].SmartAim)
}

func TestWriteCycles_EmptyKeepsHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCycles(&buf, nil))
	assert.Equal(t, "project_id,cycle_name,plan,do,study,act,date\n", buf.String())

	out, err := ReadCycles(&buf)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestReadProjects_ColumnsByName(t *testing.T) {
	input := "tags,id,title,extra,smart_aim,problem_statement,status,metrics,advisor,service,start_date,end_date\n" +
		"safety,4,Falls,ignored,,,Completed,,,,2024-05-01,\n"

	out, err := ReadProjects(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 4, out[0].ID)
	assert.Equal(t, "Falls", out[0].Title)
	assert.Equal(t, "safety", out[0].Tags)
	assert.Equal(t, models.StatusCompleted, out[0].Status)
	assert.True(t, out[0].EndDate.IsZero())
}

func TestReadProjects_BOMHeader(t *testing.T) {
	input := "\ufeff" + projectsHeader + "1,T,,,In Progress,,,,,,\n"
	out, err := ReadProjects(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestReadProjects_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		column string
	}{
		{"empty stream", "", ""},
		{"missing column", "id,title\n1,T\n", "smart_aim"},
		{"non-numeric id", projectsHeader + "abc,T,,,In Progress,,,,,,\n", "id"},
		{"bad date", projectsHeader + "1,T,,,In Progress,,,,01/02/2024,,\n", "start_date"},
		{"wrong field count", projectsHeader + "1,T\n", ""},
		{"bare quote", projectsHeader + "1,T\"x,,,,,,,,,\n", ""},
		{"invalid utf-8", projectsHeader + "1,\xff\xfe,,,,,,,,,\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadProjects(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrParse), "expected ErrParse, got %v", err)

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, TableProjects, pe.Table)
			if tt.column != "" {
				assert.Equal(t, tt.column, pe.Column)
			}
		})
	}
}

func TestReadCycles_Malformed(t *testing.T) {
	_, err := ReadCycles(strings.NewReader("project_id,cycle_name,plan,do,study,act,date\nx,c,,,,,\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), `"project_id"`)

	_, err = ReadCycles(strings.NewReader("not,a,pdsa,table\n"))
	assert.ErrorIs(t, err, ErrParse)
}
