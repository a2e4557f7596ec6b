package models

// Project represents one quality-improvement initiative
// Projects are the parent records; PDSA cycles hang off them by ID
type Project struct {
	ID               int    `json:"id"`
	Title            string `json:"title"`
	SmartAim         string `json:"smart_aim"`
	ProblemStatement string `json:"problem_statement"`
	Status           Status `json:"status"`
	Metrics          string `json:"metrics"`
	Advisor          string `json:"advisor"`
	Service          string `json:"service"`
	StartDate        Date   `json:"start_date"`
	EndDate          Date   `json:"end_date"`
	Tags             string `json:"tags"` // Raw comma-delimited labels, e.g. "hand hygiene, safety"
}

// GetID lets the CLI output formatter print the ID in quiet mode
func (p *Project) GetID() int {
	return p.ID
}

// TagList returns the project's labels split, trimmed and without empties
func (p *Project) TagList() []string {
	return SplitTags(p.Tags)
}

// Projects is the in-memory projects collection, kept in storage order
type Projects []Project

// Clone returns a copy that shares no backing array with p
func (ps Projects) Clone() Projects {
	if ps == nil {
		return Projects{}
	}
	out := make(Projects, len(ps))
	copy(out, ps)
	return out
}

// Find returns the index of the project with the given ID, or -1
func (ps Projects) Find(id int) int {
	for i := range ps {
		if ps[i].ID == id {
			return i
		}
	}
	return -1
}

// ExampleProject is the onboarding record written to a fresh projects store
func ExampleProject() Project {
	return Project{
		ID:               1,
		Title:            "Example Project",
		SmartAim:         "Increase hand hygiene compliance by 10% within 3 months",
		ProblemStatement: "Current compliance is at 60%",
		Status:           StatusInProgress,
		Metrics:          "Compliance rate",
		Advisor:          "Dr. Smith",
		Service:          "Infection Control",
		StartDate:        MustParseDate("2024-01-01"),
		EndDate:          MustParseDate("2024-04-01"),
		Tags:             "hand hygiene",
	}
}
