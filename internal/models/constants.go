package models

// ============================================================================
// STATUS
// ============================================================================

// Status is the lifecycle state of a project, stored as its display string
type Status string

// Known project statuses
const (
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusOnHold     Status = "On Hold"
	StatusCancelled  Status = "Cancelled"
)

// DefaultStatus is assigned to new projects created without one
const DefaultStatus = StatusInProgress

// Statuses lists the known statuses in form order
func Statuses() []Status {
	return []Status{StatusInProgress, StatusCompleted, StatusOnHold, StatusCancelled}
}

// Valid reports whether s is one of the known statuses
func (s Status) Valid() bool {
	for _, known := range Statuses() {
		if s == known {
			return true
		}
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// ============================================================================
// FILTERS
// ============================================================================

// FilterAll is the selector value that disables a status or tag filter
const FilterAll = "All"

// ============================================================================
// TABLE LAYOUT
// ============================================================================

// ProjectColumns is the column order of the projects table
var ProjectColumns = []string{
	"id", "title", "smart_aim", "problem_statement", "status", "metrics",
	"advisor", "service", "start_date", "end_date", "tags",
}

// PdsaColumns is the column order of the pdsa table
var PdsaColumns = []string{
	"project_id", "cycle_name", "plan", "do", "study", "act", "date",
}
