package use

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/qitrack/internal/cli"
	"github.com/thenoetrevino/qitrack/internal/testutil"
	clitest "github.com/thenoetrevino/qitrack/internal/testutil/cli"
)

func TestUseProject(t *testing.T) {
	app, _ := clitest.SetupCLITest(t)

	output, err := clitest.ExecuteCLICommand(t, app, ProjectCmd(), []string{"1"})
	require.NoError(t, err)
	assert.Equal(t, "export QITRACK_PROJECT=1\n", output)

	var hint string
	output, hint = testutil.CaptureStreams(t, func() {
		_, err = clitest.ExecuteCLICommand(t, app, ProjectCmd(), []string{"1", "--dry-run"})
	})
	require.NoError(t, err)
	assert.Empty(t, output)
	assert.Equal(t, "Would set QITRACK_PROJECT=1 (Example Project)\n", hint)

	output, err = clitest.ExecuteCLICommand(t, app, ProjectCmd(), []string{"--clear"})
	require.NoError(t, err)
	assert.Equal(t, "unset QITRACK_PROJECT\n", output)
}

func TestUseProject_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"missing id", nil, cli.ExitUsage},
		{"non numeric id", []string{"abc"}, cli.ExitUsage},
		{"unknown project", []string{"42"}, cli.ExitNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := clitest.SetupCLITest(t)

			_, err := clitest.ExecuteCLICommand(t, app, ProjectCmd(), tt.args)
			require.Error(t, err)
			assert.Equal(t, tt.want, cli.ExitCodeFor(err))
		})
	}
}

func TestUseProject_Show(t *testing.T) {
	app, _ := clitest.SetupCLITest(t)

	t.Setenv(cli.EnvProject, "")
	output, err := clitest.ExecuteCLICommand(t, app, ProjectCmd(), []string{"--show"})
	require.NoError(t, err)
	assert.Contains(t, output, "No project context set")

	t.Setenv(cli.EnvProject, "1")
	output, err = clitest.ExecuteCLICommand(t, app, ProjectCmd(), []string{"--show"})
	require.NoError(t, err)
	assert.Equal(t, "Current project: 1 (Example Project)\n", output)

	t.Setenv(cli.EnvProject, "5")
	output, err = clitest.ExecuteCLICommand(t, app, ProjectCmd(), []string{"--show"})
	require.NoError(t, err)
	assert.Equal(t, "Current project: 5 (project not found)\n", output)
}
