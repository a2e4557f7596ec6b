package repository

import (
	"sort"
	"strings"

	"github.com/thenoetrevino/qitrack/internal/models"
)

// ProjectFields holds every caller-editable project attribute.
// The ID is never part of it: it is assigned on create and fixed afterwards.
type ProjectFields struct {
	Title            string
	SmartAim         string
	ProblemStatement string
	Status           models.Status
	Metrics          string
	Advisor          string
	Service          string
	StartDate        models.Date
	EndDate          models.Date
	Tags             string
}

// FieldsOf extracts the editable fields of p
func FieldsOf(p models.Project) ProjectFields {
	return ProjectFields{
		Title:            p.Title,
		SmartAim:         p.SmartAim,
		ProblemStatement: p.ProblemStatement,
		Status:           p.Status,
		Metrics:          p.Metrics,
		Advisor:          p.Advisor,
		Service:          p.Service,
		StartDate:        p.StartDate,
		EndDate:          p.EndDate,
		Tags:             p.Tags,
	}
}

// apply copies f onto p with line endings normalized, so the stored record
// matches what a reload returns
func (f ProjectFields) apply(p *models.Project) {
	p.Title = models.NormalizeText(f.Title)
	p.SmartAim = models.NormalizeText(f.SmartAim)
	p.ProblemStatement = models.NormalizeText(f.ProblemStatement)
	p.Status = f.Status
	p.Metrics = models.NormalizeText(f.Metrics)
	p.Advisor = models.NormalizeText(f.Advisor)
	p.Service = models.NormalizeText(f.Service)
	p.StartDate = f.StartDate
	p.EndDate = f.EndDate
	p.Tags = models.NormalizeText(f.Tags)
}

// NextID returns max(existing ids)+1, or 1 for an empty collection
func NextID(projects models.Projects) int {
	next := 1
	for _, p := range projects {
		if p.ID >= next {
			next = p.ID + 1
		}
	}
	return next
}

// FilterProjects keeps projects whose status equals status and whose raw tags
// field contains tag as a substring. models.FilterAll disables either predicate.
// Matching is case-sensitive and the input order is kept.
func FilterProjects(projects models.Projects, status, tag string) models.Projects {
	filtered := models.Projects{}
	for _, p := range projects {
		if status != models.FilterAll && string(p.Status) != status {
			continue
		}
		if tag != models.FilterAll && !strings.Contains(p.Tags, tag) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// DistinctTags returns every label used by any project, sorted
func DistinctTags(projects models.Projects) []string {
	seen := make(map[string]struct{})
	for _, p := range projects {
		for _, tag := range models.SplitTags(p.Tags) {
			seen[tag] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// DistinctStatuses returns every non-empty status in use, sorted
func DistinctStatuses(projects models.Projects) []string {
	seen := make(map[string]struct{})
	for _, p := range projects {
		if p.Status != "" {
			seen[string(p.Status)] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AddProject appends a project with the next free ID. An empty status becomes
// the default status and a zero start date becomes today.
func AddProject(projects models.Projects, fields ProjectFields, today models.Date) (models.Projects, models.Project) {
	if fields.Status == "" {
		fields.Status = models.DefaultStatus
	}
	if fields.StartDate.IsZero() {
		fields.StartDate = today
	}

	project := models.Project{ID: NextID(projects)}
	fields.apply(&project)

	out := append(projects.Clone(), project)
	return out, project
}

// UpdateProject overwrites every editable field of the project with id.
// The input is returned unchanged with ErrProjectNotFound when id is absent.
func UpdateProject(projects models.Projects, id int, fields ProjectFields) (models.Projects, error) {
	idx := projects.Find(id)
	if idx < 0 {
		return projects, ErrProjectNotFound
	}

	out := projects.Clone()
	fields.apply(&out[idx])
	return out, nil
}

// DeleteProject removes the project with id and every cycle pointing at it
func DeleteProject(projects models.Projects, cycles models.Cycles, id int) (models.Projects, models.Cycles, error) {
	if projects.Find(id) < 0 {
		return projects, cycles, ErrProjectNotFound
	}

	keptProjects := models.Projects{}
	for _, p := range projects {
		if p.ID != id {
			keptProjects = append(keptProjects, p)
		}
	}
	return keptProjects, withoutProject(cycles, id), nil
}

// AddPdsa appends one cycle
func AddPdsa(cycles models.Cycles, cycle models.PdsaCycle) models.Cycles {
	return append(cycles.Clone(), cycle.Normalized())
}

// CyclesForProject returns the cycles of one project in storage order
func CyclesForProject(cycles models.Cycles, projectID int) models.Cycles {
	out := models.Cycles{}
	for _, c := range cycles {
		if c.ProjectID == projectID {
			out = append(out, c)
		}
	}
	return out
}

// ReplacePdsaForProject drops every cycle of projectID and appends rows after the
// remaining cycles. Each row is attached to projectID whatever it carried before.
func ReplacePdsaForProject(cycles models.Cycles, projectID int, rows models.Cycles) models.Cycles {
	out := withoutProject(cycles, projectID)
	for _, r := range rows {
		r.ProjectID = projectID
		out = append(out, r.Normalized())
	}
	return out
}

func withoutProject(cycles models.Cycles, projectID int) models.Cycles {
	out := models.Cycles{}
	for _, c := range cycles {
		if c.ProjectID != projectID {
			out = append(out, c)
		}
	}
	return out
}
