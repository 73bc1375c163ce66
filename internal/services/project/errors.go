package project

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/gtd/internal/models"
)

// Domain errors for project service
var (
	// Validation errors
	ErrEmptyName          = errors.New("project name cannot be empty")
	ErrNameTooLong        = fmt.Errorf("project name cannot exceed %d characters", models.MaxProjectNameLength)
	ErrDescriptionTooLong = fmt.Errorf("description cannot exceed %d characters", models.MaxDescriptionLength)
	ErrNullNotAllowed     = errors.New("cannot be null")

	// Business logic errors
	ErrProjectNotFound = fmt.Errorf("project %w", models.ErrNotFound)
)
