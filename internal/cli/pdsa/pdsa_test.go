package pdsa

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/qitrack/internal/cli"
	"github.com/thenoetrevino/qitrack/internal/models"
	"github.com/thenoetrevino/qitrack/internal/testutil"
	clitest "github.com/thenoetrevino/qitrack/internal/testutil/cli"
)

const seedProjects = `id,title,smart_aim,problem_statement,status,metrics,advisor,service,start_date,end_date,tags
1,Hand hygiene,,,In Progress,,,,2024-01-01,,hand hygiene
2,Sepsis bundle,,,Completed,,,,2024-02-01,,sepsis
`

const seedCycles = `project_id,cycle_name,plan,do,study,act,date
1,Cycle 1,Post signs,Posted,Up 10%,Adopt,2024-02-01
2,Cycle 1,Order set,Built,Faster,Adapt,2024-03-01
2,Cycle 2,Education,Taught,Same,Abandon,2024-05-01
`

// ============================================================================
// add
// ============================================================================

func TestAddCycle_Positive(t *testing.T) {
	t.Run("Date defaults to today", func(t *testing.T) {
		app, dir := clitest.SetupCLITestWithData(t, seedProjects, seedCycles)

		output, err := clitest.ExecuteCLICommand(t, app, AddCmd(), []string{
			"--project", "1",
			"--name", "Cycle 2",
			"--plan", "Badge reminders",
			"--json",
		})
		require.NoError(t, err)

		var result struct {
			Success bool             `json:"success"`
			Cycle   models.PdsaCycle `json:"cycle"`
		}
		require.NoError(t, json.Unmarshal([]byte(output), &result))
		assert.True(t, result.Success)
		assert.Equal(t, testutil.TestToday, result.Cycle.Date)

		cycles := testutil.ReadCyclesFile(t, dir)
		require.Len(t, cycles, 4)
		last := cycles[3]
		assert.Equal(t, 1, last.ProjectID)
		assert.Equal(t, "Cycle 2", last.CycleName)
		assert.Equal(t, "Badge reminders", last.Plan)
		assert.Equal(t, testutil.TestToday, last.Date)
	})

	t.Run("Explicit date and human output", func(t *testing.T) {
		app, dir := clitest.SetupCLITestWithData(t, seedProjects, seedCycles)

		output, err := clitest.ExecuteCLICommand(t, app, AddCmd(), []string{
			"--project", "2", "--name", "Cycle 3", "--date", "2024-07-01",
		})
		require.NoError(t, err)
		assert.Contains(t, output, "PDSA cycle 'Cycle 3' added to project 2 (2024-07-01)")

		cycles := testutil.ReadCyclesFile(t, dir)
		assert.Equal(t, "2024-07-01", cycles[3].Date.String())
	})
}

func TestAddCycle_Negative(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantExit int
	}{
		{"missing project", []string{"--project", "7", "--name", "X"}, cli.ExitNotFound},
		{"zero project", []string{"--project", "0", "--name", "X"}, cli.ExitValidation},
		{"bad date", []string{"--project", "1", "--date", "July 1"}, cli.ExitValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, dir := clitest.SetupCLITestWithData(t, seedProjects, seedCycles)

			_, err := clitest.ExecuteCLICommand(t, app, AddCmd(), append(tt.args, "--quiet"))
			require.Error(t, err)
			assert.Equal(t, tt.wantExit, cli.ExitCodeFor(err))
			assert.Len(t, testutil.ReadCyclesFile(t, dir), 3)
		})
	}
}

func TestAddCycle_ProjectContext(t *testing.T) {
	t.Run("Environment selects the project", func(t *testing.T) {
		t.Setenv(cli.EnvProject, "2")
		app, dir := clitest.SetupCLITestWithData(t, seedProjects, seedCycles)

		_, err := clitest.ExecuteCLICommand(t, app, AddCmd(), []string{"--name", "Cycle 3", "--quiet"})
		require.NoError(t, err)

		cycles := testutil.ReadCyclesFile(t, dir)
		require.Len(t, cycles, 4)
		assert.Equal(t, 2, cycles[3].ProjectID)
	})

	t.Run("No project is a usage error", func(t *testing.T) {
		t.Setenv(cli.EnvProject, "")
		app, _ := clitest.SetupCLITestWithData(t, seedProjects, seedCycles)

		_, err := clitest.ExecuteCLICommand(t, app, AddCmd(), []string{"--name", "Cycle 3", "--json"})
		require.Error(t, err)
		assert.Equal(t, cli.ExitUsage, cli.ExitCodeFor(err))
	})
}

// ============================================================================
// list
// ============================================================================

func TestListCycles(t *testing.T) {
	t.Setenv(cli.EnvProject, "")
	app, _ := clitest.SetupCLITestWithData(t, seedProjects, seedCycles)

	output, err := clitest.ExecuteCLICommand(t, app, ListCmd(), []string{"--project", "2", "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, "Cycle 1\nCycle 2\n", output)

	output, err = clitest.ExecuteCLICommand(t, app, ListCmd(), []string{"--json"})
	require.NoError(t, err)
	var result struct {
		Cycles models.Cycles `json:"cycles"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Len(t, result.Cycles, 3)

	output, err = clitest.ExecuteCLICommand(t, app, ListCmd(), []string{"--project", "1"})
	require.NoError(t, err)
	assert.Contains(t, output, "PDSA cycles (1):")
	assert.Contains(t, output, "Post signs")
	assert.Contains(t, output, "(project #1, 2024-02-01)")
}

func TestListCycles_UsesProjectContext(t *testing.T) {
	t.Setenv(cli.EnvProject, "1")
	app, _ := clitest.SetupCLITestWithData(t, seedProjects, seedCycles)

	output, err := clitest.ExecuteCLICommand(t, app, ListCmd(), []string{"--quiet"})
	require.NoError(t, err)
	assert.Equal(t, "Cycle 1\n", output)
}

func TestListCycles_MissingProject(t *testing.T) {
	app, _ := clitest.SetupCLITestWithData(t, seedProjects, seedCycles)

	_, err := clitest.ExecuteCLICommand(t, app, ListCmd(), []string{"--project", "5", "--json"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitNotFound, cli.ExitCodeFor(err))
}

// ============================================================================
// replace
// ============================================================================

func TestReplaceCycles_FromFile(t *testing.T) {
	app, dir := clitest.SetupCLITestWithData(t, seedProjects, seedCycles)

	// project_id 9 is overwritten with the target project
	input := filepath.Join(t.TempDir(), "cycles.csv")
	testutil.WriteFile(t, input, "project_id,cycle_name,plan,do,study,act,date\n9,Only cycle,P,D,S,A,2024-06-01\n")

	output, err := clitest.ExecuteCLICommand(t, app, ReplaceCmd(), []string{"--project", "2", "--file", input, "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, "1\n", output)

	cycles := testutil.ReadCyclesFile(t, dir)
	require.Len(t, cycles, 2)
	assert.Equal(t, 1, cycles[0].ProjectID)
	assert.Equal(t, models.PdsaCycle{
		ProjectID: 2, CycleName: "Only cycle", Plan: "P", Do: "D", Study: "S", Act: "A",
		Date: models.MustParseDate("2024-06-01"),
	}, cycles[1])
}

func TestReplaceCycles_FromStdinEmptyClears(t *testing.T) {
	app, dir := clitest.SetupCLITestWithData(t, seedProjects, seedCycles)

	cmd := ReplaceCmd()
	cmd.SetIn(bytes.NewBufferString("project_id,cycle_name,plan,do,study,act,date\n"))

	output, err := clitest.ExecuteCLICommand(t, app, cmd, []string{"--project", "2", "--file", "-", "--json"})
	require.NoError(t, err)
	assert.Contains(t, output, `"cycles":0`)

	cycles := testutil.ReadCyclesFile(t, dir)
	require.Len(t, cycles, 1)
	assert.Equal(t, "Post signs", cycles[0].Plan)
}

func TestReplaceCycles_Negative(t *testing.T) {
	tests := []struct {
		name     string
		project  string
		content  string
		wantExit int
	}{
		{"malformed csv", "2", "project_id,cycle_name,plan,do,study,act,date\n2,\"unterminated\n", cli.ExitDataErr},
		{"missing column", "2", "project_id,cycle_name,plan\n2,x,y\n", cli.ExitDataErr},
		{"bad date", "2", "project_id,cycle_name,plan,do,study,act,date\n2,x,,,,,tomorrow\n", cli.ExitDataErr},
		{"missing project", "8", "project_id,cycle_name,plan,do,study,act,date\n", cli.ExitNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, dir := clitest.SetupCLITestWithData(t, seedProjects, seedCycles)
			input := filepath.Join(t.TempDir(), "cycles.csv")
			testutil.WriteFile(t, input, tt.content)

			_, err := clitest.ExecuteCLICommand(t, app, ReplaceCmd(), []string{"--project", tt.project, "--file", input, "--json"})
			require.Error(t, err)
			assert.Equal(t, tt.wantExit, cli.ExitCodeFor(err))
			assert.Len(t, testutil.ReadCyclesFile(t, dir), 3)
		})
	}
}

func TestReplaceCycles_MissingFile(t *testing.T) {
	app, _ := clitest.SetupCLITestWithData(t, seedProjects, seedCycles)

	_, err := clitest.ExecuteCLICommand(t, app, ReplaceCmd(), []string{
		"--project", "2", "--file", filepath.Join(t.TempDir(), "nope.csv"), "--quiet",
	})
	require.Error(t, err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeFor(err))
	assert.True(t, strings.Contains(err.Error(), "nope.csv"))
}
