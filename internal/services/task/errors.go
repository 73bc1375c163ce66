package task

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/gtd/internal/models"
)

// Task-related errors
var (
	// Validation errors, reported per field through models.ValidationErrors
	ErrEmptyName          = errors.New("name is required")
	ErrNameTooLong        = fmt.Errorf("name cannot exceed %d characters", models.MaxTaskNameLength)
	ErrDescriptionTooLong = fmt.Errorf("description cannot exceed %d characters", models.MaxDescriptionLength)
	ErrNullNotAllowed     = errors.New("cannot be null")
	ErrInvalidDueDate     = models.ErrInvalidDate
	ErrInvalidView        = errors.New("invalid view (must be: upcoming)")
	ErrEmptyReorder       = errors.New("must contain at least one task id")
	ErrDuplicateTaskID    = errors.New("contains duplicate task ids")
	ErrWrongSystemList    = errors.New("every task must belong to the given system list")

	// Business logic errors
	ErrTaskNotFound    = fmt.Errorf("task %w", models.ErrNotFound)
	ErrProjectNotFound = fmt.Errorf("project %w", models.ErrNotFound)
	ErrLabelNotFound   = fmt.Errorf("label %w", models.ErrNotFound)
)

// notFound replaces a repository not-found error with the service sentinel
// and wraps everything else with context
func notFound(err error, sentinel error, action string) error {
	if errors.Is(err, models.ErrNotFound) {
		return sentinel
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
