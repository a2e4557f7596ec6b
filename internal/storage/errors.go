package storage

import (
	"errors"
	"fmt"
)

// Storage errors. Callers match them with errors.Is.
var (
	// ErrStorageUnavailable means the data directory or a backing store could not be created or opened
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrStorageWrite means a save did not complete; stored content is undefined until the next good save
	ErrStorageWrite = errors.New("storage write failed")

	// ErrParse means a backing store or import stream is not a readable table
	ErrParse = errors.New("malformed table")

	// ErrUnknownBackend is returned by Open for an unsupported backend name
	ErrUnknownBackend = errors.New("unknown storage backend")

	errEmptyTable    = errors.New("missing header row")
	errMissingColumn = errors.New("missing column")
	errBadEncoding   = errors.New("invalid UTF-8")
)

// ParseError describes where a table failed to parse
type ParseError struct {
	Table  string // "projects" or "pdsa"
	Line   int    // 1-based line (CSV) or row (SQLite); 0 when unknown
	Column string // Column name, empty for row-level failures
	Err    error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("parse %s", e.Table)
	if e.Line > 0 {
		msg += fmt.Sprintf(": line %d", e.Line)
	}
	if e.Column != "" {
		msg += fmt.Sprintf(", column %q", e.Column)
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes every ParseError match ErrParse
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
