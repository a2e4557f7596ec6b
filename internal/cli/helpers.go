package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// ChangedString returns a pointer to the flag's value when the user set it,
// or nil when the flag was left at its default
func ChangedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return nil
	}
	return &value
}

// OutputFlags registers the agent-friendly --json and --quiet flags
func OutputFlags(cmd *cobra.Command, quietHelp string) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, quietHelp)
}

// Formatter builds the OutputFormatter from a command's --json and --quiet flags
func Formatter(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{JSON: jsonOutput, Quiet: quietMode}
}

// EnvProject holds the project selected with "qitrack use project"
const EnvProject = "QITRACK_PROJECT"

// ErrNoProject is returned when neither --project nor QITRACK_PROJECT is set
var ErrNoProject = errors.New("no project specified: use --project or set " + EnvProject)

// GetProjectID returns the --project flag when set, otherwise QITRACK_PROJECT
func GetProjectID(cmd *cobra.Command) (int, error) {
	if cmd.Flags().Changed("project") {
		return cmd.Flags().GetInt("project")
	}

	raw := strings.TrimSpace(os.Getenv(EnvProject))
	if raw == "" {
		return 0, ErrNoProject
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", EnvProject, raw)
	}
	return id, nil
}
