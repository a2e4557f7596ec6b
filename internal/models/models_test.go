package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Status Tests
// ============================================================================

func TestStatus_Valid(t *testing.T) {
	for _, s := range Statuses() {
		assert.True(t, s.Valid(), "expected %q to be valid", s)
	}

	invalid := []Status{"", "in progress", "Done", "All"}
	for _, s := range invalid {
		assert.False(t, s.Valid(), "expected %q to be invalid", s)
	}
}

func TestDefaultStatus(t *testing.T) {
	assert.Equal(t, StatusInProgress, DefaultStatus)
	assert.Equal(t, "In Progress", DefaultStatus.String())
}

// ============================================================================
// Date Tests
// ============================================================================

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"2024-01-01", "2024-01-01", false},
		{"", "", false},
		{"2024-13-01", "", true},
		{"01/02/2024", "", true},
		{"2024-01-01T10:00:00Z", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestNewDate_DropsTimeOfDay(t *testing.T) {
	d := NewDate(time.Date(2025, 3, 9, 23, 59, 0, 0, time.Local))
	assert.Equal(t, "2025-03-09", d.String())
	assert.False(t, d.IsZero())
	assert.True(t, Date{}.IsZero())
}

func TestDate_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		D Date `json:"d"`
		E Date `json:"e"`
	}{D: MustParseDate("2024-04-01")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"2024-04-01","e":""}`, string(data))

	var back struct {
		D Date `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"d":"2023-12-31"}`), &back))
	assert.Equal(t, "2023-12-31", back.D.String())

	assert.Error(t, json.Unmarshal([]byte(`{"d":"31-12-2023"}`), &back))
}

// ============================================================================
// Tag Tests
// ============================================================================

func TestSplitTags(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"hand hygiene", []string{"hand hygiene"}},
		{"a, b", []string{"a", "b"}},
		{" a ,, b ,", []string{"a", "b"}},
		{"", nil},
		{" , ", nil},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitTags(tt.raw), "raw=%q", tt.raw)
	}
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, "a, b", NormalizeTags(" a,,b "))
	assert.Equal(t, "", NormalizeTags(" , "))
	assert.Equal(t, "hand hygiene, safety", NormalizeTags("hand hygiene,safety"))
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "a\nb", NormalizeText("a\r\nb"))
	assert.Equal(t, "a\nb\rc", NormalizeText("a\nb\rc"))

	c := PdsaCycle{ProjectID: 2, CycleName: "x\r\ny", Plan: "1\r\n2", Act: "ok"}.Normalized()
	assert.Equal(t, PdsaCycle{ProjectID: 2, CycleName: "x\ny", Plan: "1\n2", Act: "ok"}, c)
}

// ============================================================================
// Collection Tests
// ============================================================================

func TestProjects_CloneAndFind(t *testing.T) {
	ps := Projects{{ID: 1, Title: "a"}, {ID: 3, Title: "b"}}
	clone := ps.Clone()
	clone[0].Title = "changed"

	assert.Equal(t, "a", ps[0].Title)
	assert.Equal(t, 1, ps.Find(3))
	assert.Equal(t, -1, ps.Find(2))

	var empty Projects
	assert.NotNil(t, empty.Clone())
}

func TestExampleProject(t *testing.T) {
	p := ExampleProject()
	assert.Equal(t, 1, p.ID)
	assert.Equal(t, StatusInProgress, p.Status)
	assert.Equal(t, "2024-01-01", p.StartDate.String())
	assert.Equal(t, "2024-04-01", p.EndDate.String())
	assert.Equal(t, []string{"hand hygiene"}, p.TagList())
	assert.Equal(t, 1, p.GetID())
}

func TestColumnLayouts(t *testing.T) {
	assert.Len(t, ProjectColumns, 11)
	assert.Equal(t, "id", ProjectColumns[0])
	assert.Equal(t, "tags", ProjectColumns[10])
	assert.Equal(t, []string{"project_id", "cycle_name", "plan", "do", "study", "act", "date"}, PdsaColumns)
}
