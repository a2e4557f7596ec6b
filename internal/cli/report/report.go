// Package report builds the markdown summary of a project and its PDSA cycles
// and renders it for the terminal with glamour
package report

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/thenoetrevino/qitrack/internal/models"
)

const emptySection = "_None recorded_"

// Cache Glamour renderers by width to avoid expensive re-creation
var rendererCache sync.Map // map[int]*glamour.TermRenderer

// getRenderer returns a cached renderer for the given width
func getRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	rendererCache.Store(width, renderer)
	return renderer, nil
}

// Render renders markdown for a terminal of the given width
func Render(markdown string, width int) (string, error) {
	renderer, err := getRenderer(width)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

// Markdown returns the project report: header facts, the narrative fields,
// then one section per PDSA cycle in stored order
func Markdown(p models.Project, cycles models.Cycles) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", orDefault(p.Title, "Untitled project"))
	fmt.Fprintf(&b, "- **ID:** %d\n", p.ID)
	fmt.Fprintf(&b, "- **Status:** %s\n", orDefault(string(p.Status), "-"))
	fmt.Fprintf(&b, "- **Service:** %s\n", orDefault(p.Service, "-"))
	fmt.Fprintf(&b, "- **Advisor:** %s\n", orDefault(p.Advisor, "-"))
	fmt.Fprintf(&b, "- **Dates:** %s → %s\n", orDefault(p.StartDate.String(), "?"), orDefault(p.EndDate.String(), "ongoing"))
	if tags := p.TagList(); len(tags) > 0 {
		fmt.Fprintf(&b, "- **Tags:** `%s`\n", strings.Join(tags, "` `"))
	}

	section(&b, "Problem Statement", p.ProblemStatement)
	section(&b, "SMART Aim", p.SmartAim)
	section(&b, "Metrics", p.Metrics)

	fmt.Fprintf(&b, "\n## PDSA Cycles (%d)\n", len(cycles))
	if len(cycles) == 0 {
		fmt.Fprintf(&b, "\n%s\n", emptySection)
	}
	for i, c := range cycles {
		fmt.Fprintf(&b, "\n### %d. %s", i+1, orDefault(c.CycleName, "Unnamed cycle"))
		if !c.Date.IsZero() {
			fmt.Fprintf(&b, " (%s)", c.Date)
		}
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "- **Plan:** %s\n", orDefault(c.Plan, "-"))
		fmt.Fprintf(&b, "- **Do:** %s\n", orDefault(c.Do, "-"))
		fmt.Fprintf(&b, "- **Study:** %s\n", orDefault(c.Study, "-"))
		fmt.Fprintf(&b, "- **Act:** %s\n", orDefault(c.Act, "-"))
	}

	return b.String()
}

func section(b *strings.Builder, heading, body string) {
	fmt.Fprintf(b, "\n## %s\n\n%s\n", heading, orDefault(strings.TrimSpace(body), emptySection))
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
