package project

import (
	"testing"

	"github.com/thenoetrevino/qitrack/internal/models"
	"github.com/thenoetrevino/qitrack/internal/testutil"
)

const seedProjects = `id,title,smart_aim,problem_statement,status,metrics,advisor,service,start_date,end_date,tags
1,Hand hygiene,Increase compliance,Low compliance,In Progress,Compliance rate,Dr. Smith,Infection Control,2024-01-01,2024-04-01,hand hygiene
2,Sepsis bundle,Improve bundle use,Delays,Completed,Time to antibiotics,Dr. Chen,ED,2024-02-01,2024-08-01,"sepsis, ED"
3,Falls,Reduce falls,Falls rising,Completed,Falls per 1000,Dr. Ortiz,Medicine,2024-03-01,,"safety, hygiene"
`

const seedCycles = `project_id,cycle_name,plan,do,study,act,date
1,Cycle 1,Post signs,Posted,Up 10%,Adopt,2024-02-01
2,Cycle 1,Order set,Built,Faster,Adapt,2024-03-01
2,Cycle 2,Education,Taught,Same,Abandon,2024-05-01
`

// projectEnvelope decodes {"success":..., "project":...} responses
type projectEnvelope struct {
	Success bool           `json:"success"`
	Project models.Project `json:"project"`
	Cycles  models.Cycles  `json:"cycles"`
}

func decodeProject(t *testing.T, output string) projectEnvelope {
	t.Helper()
	return testutil.DecodeJSON[projectEnvelope](t, output)
}
