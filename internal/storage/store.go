// Package storage holds the backing stores for the projects and pdsa tables
package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/thenoetrevino/qitrack/internal/models"
)

// Store persists both collections. Save always rewrites everything it holds.
type Store interface {
	// Ensure creates the storage location and seeds missing tables; it never overwrites
	Ensure(ctx context.Context) error

	// Load parses both tables
	Load(ctx context.Context) (models.Projects, models.Cycles, error)

	// Save replaces the stored content of both tables
	Save(ctx context.Context, projects models.Projects, cycles models.Cycles) error

	// Location describes where data lives, for log and CLI output
	Location() string

	Close() error
}

// Backend names a Store implementation
type Backend string

const (
	BackendCSV    Backend = "csv"
	BackendSQLite Backend = "sqlite"
)

// ParseBackend maps a config or flag value to a Backend
func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case "", BackendCSV:
		return BackendCSV, nil
	case BackendSQLite:
		return BackendSQLite, nil
	default:
		return "", fmt.Errorf("%w: %q (must be: csv, sqlite)", ErrUnknownBackend, s)
	}
}

// Open returns the store for backend rooted at dir. Nothing touches disk until Ensure.
func Open(backend Backend, dir string) (Store, error) {
	switch backend {
	case "", BackendCSV:
		return NewCSVStore(dir), nil
	case BackendSQLite:
		return NewSQLiteStore(dir), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
