package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/qitrack/internal/models"
)

func TestMarkdown_ProjectWithCycles(t *testing.T) {
	p := models.ExampleProject()
	cycles := models.Cycles{
		{ProjectID: 1, CycleName: "Cycle 1", Plan: "Post signs", Do: "Posted", Study: "Up 10%", Act: "Adopt", Date: models.MustParseDate("2024-02-01")},
		{ProjectID: 1, CycleName: "", Plan: "Audit"},
	}

	md := Markdown(p, cycles)

	assert.True(t, strings.HasPrefix(md, "# Example Project\n"))
	assert.Contains(t, md, "- **Status:** In Progress")
	assert.Contains(t, md, "- **Dates:** 2024-01-01 → 2024-04-01")
	assert.Contains(t, md, "- **Tags:** `hand hygiene`")
	assert.Contains(t, md, "## PDSA Cycles (2)")
	assert.Contains(t, md, "### 1. Cycle 1 (2024-02-01)")
	assert.Contains(t, md, "### 2. Unnamed cycle\n")
	assert.Contains(t, md, "- **Study:** Up 10%")
	assert.Less(t, strings.Index(md, "Cycle 1"), strings.Index(md, "Unnamed cycle"))
}

func TestMarkdown_EmptyFields(t *testing.T) {
	md := Markdown(models.Project{ID: 7}, nil)

	assert.Contains(t, md, "# Untitled project")
	assert.Contains(t, md, "→ ongoing")
	assert.NotContains(t, md, "**Tags:**")
	assert.Contains(t, md, "## PDSA Cycles (0)\n\n"+emptySection)
	assert.Equal(t, 4, strings.Count(md, emptySection))
}

func TestRender(t *testing.T) {
	out, err := Render("# Heading\n\nSome *text*.", 60)
	require.NoError(t, err)
	assert.Contains(t, out, "Heading")
	assert.Contains(t, out, "text")

	// cached renderer is reused for the same width
	again, err := Render("# Heading\n\nSome *text*.", 60)
	require.NoError(t, err)
	assert.Equal(t, out, again)
}
