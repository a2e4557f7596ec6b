package pdsa

import (
	"errors"

	"github.com/thenoetrevino/qitrack/internal/models"
)

// Domain errors for pdsa service
var (
	ErrInvalidProjectID = errors.New("invalid project ID")

	// ErrProjectNotFound is returned when a cycle would point at a missing project
	ErrProjectNotFound = models.ErrProjectNotFound
)
