package data

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/qitrack/internal/cli"
	"github.com/thenoetrevino/qitrack/internal/models"
	"github.com/thenoetrevino/qitrack/internal/testutil"
	clitest "github.com/thenoetrevino/qitrack/internal/testutil/cli"
)

const projectsCSV = `id,title,smart_aim,problem_statement,status,metrics,advisor,service,start_date,end_date,tags
4,Falls,Reduce falls,,On Hold,,,Medicine,2024-03-01,,"safety, nursing"
9,Sepsis,,,Completed,,,ED,2024-02-01,2024-08-01,sepsis
`

const pdsaCSV = `project_id,cycle_name,plan,do,study,act,date
9,Cycle 1,Order set,Built,Faster,Adapt,2024-03-01
`

// ============================================================================
// init
// ============================================================================

func TestInit_SeedsEmptyDirectory(t *testing.T) {
	app, dir := clitest.SetupCLITest(t)

	output, err := clitest.ExecuteCLICommand(t, app, InitCmd(), []string{"--json"})
	require.NoError(t, err)

	result := testutil.ParseJSON(t, output)
	assert.Equal(t, true, result["success"])
	assert.Equal(t, dir, result["location"])
	assert.Equal(t, float64(1), result["projects"])
	assert.Equal(t, float64(0), result["cycles"])

	assert.Equal(t, models.Projects{models.ExampleProject()}, testutil.ReadProjectsFile(t, dir))
	assert.Empty(t, testutil.ReadCyclesFile(t, dir))
}

func TestInit_Quiet(t *testing.T) {
	app, dir := clitest.SetupCLITest(t)

	output, err := clitest.ExecuteCLICommand(t, app, InitCmd(), []string{"--quiet"})
	require.NoError(t, err)
	assert.Equal(t, dir+"\n", output)
}

// ============================================================================
// import
// ============================================================================

func TestImport_ReplacesTables(t *testing.T) {
	app, dir := clitest.SetupCLITest(t)
	src := t.TempDir()
	testutil.WriteFile(t, filepath.Join(src, "p.csv"), projectsCSV)
	testutil.WriteFile(t, filepath.Join(src, "c.csv"), pdsaCSV)

	output, err := clitest.ExecuteCLICommand(t, app, ImportCmd(), []string{
		"--projects", filepath.Join(src, "p.csv"),
		"--pdsa", filepath.Join(src, "c.csv"),
		"--json",
	})
	require.NoError(t, err)

	result := testutil.ParseJSON(t, output)
	assert.Equal(t, float64(2), result["projects"])
	assert.Equal(t, float64(1), result["cycles"])

	projects := testutil.ReadProjectsFile(t, dir)
	require.Len(t, projects, 2)
	assert.Equal(t, 4, projects[0].ID)
	assert.Equal(t, 9, projects[1].ID)
	assert.Len(t, testutil.ReadCyclesFile(t, dir), 1)

	// next id continues from the imported maximum
	p, err := app.ProjectService.CreateProject(t.Context(), projectRequest("After import"))
	require.NoError(t, err)
	assert.Equal(t, 10, p.ID)
}

func TestImport_MalformedLeavesTableUntouched(t *testing.T) {
	app, dir := clitest.SetupCLITest(t)
	bad := filepath.Join(t.TempDir(), "bad.csv")
	testutil.WriteFile(t, bad, "id,title\nabc,Broken\n")

	_, err := clitest.ExecuteCLICommand(t, app, ImportCmd(), []string{"--projects", bad, "--json"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitDataErr, cli.ExitCodeFor(err))

	assert.Equal(t, models.Projects{models.ExampleProject()}, app.Repo().Projects())
	assert.Equal(t, models.Projects{models.ExampleProject()}, testutil.ReadProjectsFile(t, dir))
}

func TestImport_BadPdsaKeepsBothTables(t *testing.T) {
	app, dir := clitest.SetupCLITest(t)
	src := t.TempDir()
	testutil.WriteFile(t, filepath.Join(src, "p.csv"), projectsCSV)
	testutil.WriteFile(t, filepath.Join(src, "bad.csv"), "project_id,cycle_name\n4,c\n")

	output, err := clitest.ExecuteCLICommand(t, app, ImportCmd(), []string{
		"--projects", filepath.Join(src, "p.csv"),
		"--pdsa", filepath.Join(src, "bad.csv"),
		"--json",
	})
	require.Error(t, err)
	assert.Equal(t, cli.ExitDataErr, cli.ExitCodeFor(err))
	assert.Contains(t, output, "bad.csv")

	assert.Equal(t, models.Projects{models.ExampleProject()}, app.Repo().Projects())
	assert.Equal(t, models.Projects{models.ExampleProject()}, testutil.ReadProjectsFile(t, dir))
}

func TestImport_Usage(t *testing.T) {
	app, _ := clitest.SetupCLITest(t)

	_, err := clitest.ExecuteCLICommand(t, app, ImportCmd(), []string{"--quiet"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeFor(err))

	_, err = clitest.ExecuteCLICommand(t, app, ImportCmd(), []string{"--pdsa", filepath.Join(t.TempDir(), "missing.csv"), "--quiet"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeFor(err))
}

// ============================================================================
// export
// ============================================================================

func TestExport_ToFilesRoundTrips(t *testing.T) {
	app, dir := clitest.SetupCLITestWithData(t, projectsCSV, pdsaCSV)
	out := t.TempDir()

	output, err := clitest.ExecuteCLICommand(t, app, ExportCmd(), []string{
		"--projects", filepath.Join(out, "projects.csv"),
		"--pdsa", filepath.Join(out, "pdsa.csv"),
		"--json",
	})
	require.NoError(t, err)

	var result struct {
		Success bool              `json:"success"`
		Files   map[string]string `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.True(t, result.Success)
	assert.Len(t, result.Files, 2)

	assert.Equal(t, testutil.ReadProjectsFile(t, dir), testutil.ReadProjectsFile(t, out))
	assert.Equal(t, testutil.ReadCyclesFile(t, dir), testutil.ReadCyclesFile(t, out))
}

func TestExport_ToStdout(t *testing.T) {
	app, _ := clitest.SetupCLITestWithData(t, projectsCSV, pdsaCSV)

	output, err := clitest.ExecuteCLICommand(t, app, ExportCmd(), []string{"--pdsa", "-"})
	require.NoError(t, err)
	assert.Equal(t, pdsaCSV, output)
}

func TestExport_Usage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no tables", []string{}},
		{"both to stdout", []string{"--projects", "-", "--pdsa", "-"}},
		{"json with stdout", []string{"--projects", "-", "--json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := clitest.SetupCLITest(t)

			_, err := clitest.ExecuteCLICommand(t, app, ExportCmd(), tt.args)
			require.Error(t, err)
			assert.Equal(t, cli.ExitUsage, cli.ExitCodeFor(err))
		})
	}
}

func TestExport_UnwritableDestination(t *testing.T) {
	app, _ := clitest.SetupCLITest(t)
	dest := filepath.Join(t.TempDir(), "missing-dir", "p.csv")

	_, err := clitest.ExecuteCLICommand(t, app, ExportCmd(), []string{"--projects", dest, "--quiet"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitError, cli.ExitCodeFor(err))
	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr))
}
