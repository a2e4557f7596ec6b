// Package testutil holds helpers shared by tests across packages
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/spf13/cobra"
)

// redirect points *stream at a pipe and returns a function that restores it
// and yields everything written in between
func redirect(t *testing.T, stream **os.File) func() string {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}

	original := *stream
	*stream = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		_ = r.Close()
		done <- buf.String()
	}()

	var captured *string
	return func() string {
		if captured == nil {
			_ = w.Close()
			*stream = original
			out := <-done
			captured = &out
		}
		return *captured
	}
}

// CaptureStreams runs fn with stdout and stderr captured separately.
// Commands print results to stdout and progress or hints to stderr.
func CaptureStreams(t *testing.T, fn func()) (stdout, stderr string) {
	t.Helper()

	finishOut := redirect(t, &os.Stdout)
	finishErr := redirect(t, &os.Stderr)
	defer finishErr()
	defer finishOut()

	fn()

	return finishOut(), finishErr()
}

// CaptureOutput runs fn and returns what it wrote to stdout
func CaptureOutput(t *testing.T, fn func()) string {
	t.Helper()

	finish := redirect(t, &os.Stdout)
	defer finish()

	fn()

	return finish()
}

// RunCommand executes a standalone command with args and returns its stdout
func RunCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	SetupCobraCommand(cmd, args)

	var executeErr error
	output := CaptureOutput(t, func() {
		executeErr = cmd.Execute()
	})
	return output, executeErr
}

// ParseJSON decodes a single JSON object printed by a --json command
func ParseJSON(t *testing.T, output string) map[string]interface{} {
	t.Helper()
	return DecodeJSON[map[string]interface{}](t, output)
}

// DecodeJSON decodes command output into T, failing the test with the raw
// output when it is not valid JSON
func DecodeJSON[T any](t *testing.T, output string) T {
	t.Helper()

	var result T
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
	}
	return result
}

// SetupCobraCommand sets args and silences cobra's own usage and error
// printing so only the command's output is captured
func SetupCobraCommand(cmd *cobra.Command, args []string) {
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
}
