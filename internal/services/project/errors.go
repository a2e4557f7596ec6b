package project

import (
	"errors"

	"github.com/thenoetrevino/qitrack/internal/models"
)

// Domain errors for project service
var (
	// Validation errors
	ErrInvalidProjectID = errors.New("invalid project ID")

	// Business logic errors
	ErrProjectNotFound = models.ErrProjectNotFound
)
