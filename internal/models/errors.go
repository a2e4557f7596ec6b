package models

import "errors"

// Domain-specific errors shared by the repository and services
var (
	// ErrProjectNotFound indicates a mutation referenced a project ID that does not exist
	ErrProjectNotFound = errors.New("project not found")
)
