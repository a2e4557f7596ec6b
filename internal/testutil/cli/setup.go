package cli

import (
	"context"
	"log/slog"
	"testing"

	"github.com/thenoetrevino/qitrack/internal/app"
	"github.com/thenoetrevino/qitrack/internal/storage"
	"github.com/thenoetrevino/qitrack/internal/testutil"
)

// SetupCLITest opens an App over a fresh CSV data directory with a fixed clock.
// Returns the App and the data directory so tests can inspect persisted tables.
// This function is only for CLI tests and is isolated in a separate package
// to avoid import cycles when service tests import testutil
func SetupCLITest(t *testing.T) (*app.App, string) {
	t.Helper()
	return SetupCLITestWithData(t, "", "")
}

// SetupCLITestWithData is SetupCLITest with pre-written projects and pdsa tables
func SetupCLITestWithData(t *testing.T, projectsCSV, pdsaCSV string) (*app.App, string) {
	t.Helper()

	dir := testutil.SetupDataDir(t, projectsCSV, pdsaCSV)

	appInstance, err := app.Open(context.Background(), storage.BackendCSV, dir,
		app.WithClock(testutil.FixedClock()),
		app.WithLogger(slog.New(slog.DiscardHandler)),
	)
	if err != nil {
		t.Fatalf("Failed to open test app: %v", err)
	}
	t.Cleanup(func() {
		if err := appInstance.Close(); err != nil {
			t.Errorf("Failed to close test app: %v", err)
		}
	})

	return appInstance, dir
}
