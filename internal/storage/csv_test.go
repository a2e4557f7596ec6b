package storage

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/qitrack/internal/models"
)

func TestCSVStore_EnsureSeeds(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	store := NewCSVStore(dir)
	ctx := context.Background()

	require.NoError(t, store.Ensure(ctx))

	projects, cycles, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, models.ExampleProject(), projects[0])
	assert.Empty(t, cycles)

	raw, err := os.ReadFile(store.PdsaPath())
	require.NoError(t, err)
	assert.Equal(t, "project_id,cycle_name,plan,do,study,act,date\n", string(raw))
}

func TestCSVStore_EnsureNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	store := NewCSVStore(dir)
	ctx := context.Background()

	require.NoError(t, store.Ensure(ctx))
	require.NoError(t, store.Save(ctx, models.Projects{}, models.Cycles{{ProjectID: 9, CycleName: "kept"}}))

	require.NoError(t, store.Ensure(ctx))

	projects, cycles, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)
	require.Len(t, cycles, 1)
	assert.Equal(t, "kept", cycles[0].CycleName)
}

func TestCSVStore_EnsureSeedsOnlyMissingTable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectsFile), []byte(projectsHeader), 0o644))

	store := NewCSVStore(dir)
	require.NoError(t, store.Ensure(context.Background()))

	projects, cycles, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, projects)
	assert.Empty(t, cycles)
}

func TestCSVStore_LoadMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectsFile), []byte("garbage\"\n\x00"), 0o644))

	store := NewCSVStore(dir)
	require.NoError(t, store.Ensure(context.Background()))

	_, _, err := store.Load(context.Background())
	assert.ErrorIs(t, err, ErrParse)
}

func TestCSVStore_SaveUnwritable(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}

	dir := t.TempDir()
	store := NewCSVStore(dir)
	ctx := context.Background()
	require.NoError(t, store.Ensure(ctx))

	require.NoError(t, os.Chmod(store.ProjectsPath(), 0o444))
	t.Cleanup(func() { _ = os.Chmod(store.ProjectsPath(), 0o644) })

	err := store.Save(ctx, models.Projects{}, models.Cycles{})
	assert.ErrorIs(t, err, ErrStorageWrite)
}

func TestCSVStore_EnsureUnavailable(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	store := NewCSVStore(filepath.Join(file, "data"))
	err := store.Ensure(context.Background())
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestOpen(t *testing.T) {
	s, err := Open(BackendCSV, "x")
	require.NoError(t, err)
	assert.IsType(t, &CSVStore{}, s)

	s, err = Open(BackendSQLite, "x")
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)

	_, err = Open("parquet", "x")
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestParseBackend(t *testing.T) {
	b, err := ParseBackend("")
	require.NoError(t, err)
	assert.Equal(t, BackendCSV, b)

	b, err = ParseBackend(" SQLite ")
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, b)

	_, err = ParseBackend("xlsx")
	assert.ErrorIs(t, err, ErrUnknownBackend)
}
