package cli

import (
	"errors"

	"github.com/thenoetrevino/qitrack/internal/models"
	pdsaservice "github.com/thenoetrevino/qitrack/internal/services/pdsa"
	projectservice "github.com/thenoetrevino/qitrack/internal/services/project"
	"github.com/thenoetrevino/qitrack/internal/storage"
	"github.com/thenoetrevino/qitrack/internal/validator"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: storage errors, write failures, unexpected failures,
	// or any error that doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: missing required flags, unknown backend, unreadable input files.
	ExitUsage = 2

	// ExitNotFound indicates a requested project was not found.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: a projects or pdsa table that cannot be parsed.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: invalid status values, malformed dates, non-positive IDs.
	ExitValidation = 5
)

// CodedError carries the process exit code for an error that has already
// been reported to the user
type CodedError struct {
	Code int
	Err  error
}

func (e *CodedError) Error() string {
	return e.Err.Error()
}

func (e *CodedError) Unwrap() error {
	return e.Err
}

// ExitCodeFor maps an error to its exit code
func ExitCodeFor(err error) int {
	var (
		exitErr *CodedError
		verrs   validator.ValidationErrors
	)

	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, models.ErrProjectNotFound):
		return ExitNotFound
	case errors.Is(err, storage.ErrParse):
		return ExitDataErr
	case errors.As(err, &verrs),
		errors.Is(err, projectservice.ErrInvalidProjectID),
		errors.Is(err, pdsaservice.ErrInvalidProjectID):
		return ExitValidation
	case errors.Is(err, storage.ErrUnknownBackend):
		return ExitUsage
	default:
		return ExitError
	}
}

// ErrorCode returns the machine-readable code reported for err, or fallback
// when err has no specific code
func ErrorCode(err error, fallback string) string {
	var verrs validator.ValidationErrors

	switch {
	case errors.Is(err, models.ErrProjectNotFound):
		return "PROJECT_NOT_FOUND"
	case errors.Is(err, storage.ErrParse):
		return "PARSE_ERROR"
	case errors.As(err, &verrs),
		errors.Is(err, projectservice.ErrInvalidProjectID),
		errors.Is(err, pdsaservice.ErrInvalidProjectID):
		return "VALIDATION_ERROR"
	case errors.Is(err, storage.ErrStorageUnavailable):
		return "STORAGE_UNAVAILABLE"
	case errors.Is(err, storage.ErrStorageWrite):
		return "STORAGE_WRITE_FAILED"
	case errors.Is(err, storage.ErrUnknownBackend):
		return "UNKNOWN_BACKEND"
	default:
		return fallback
	}
}
