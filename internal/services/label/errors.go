package label

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/gtd/internal/models"
)

// Label-related errors
var (
	// Validation errors
	ErrEmptyName      = errors.New("name cannot be empty")
	ErrNameTooLong    = fmt.Errorf("name cannot exceed %d characters", models.MaxLabelNameLength)
	ErrInvalidColor   = errors.New("invalid color format (must be hex color like #FFFFFF)")
	ErrNullNotAllowed = errors.New("cannot be null")

	// Business logic errors
	ErrLabelNotFound = fmt.Errorf("label %w", models.ErrNotFound)
	ErrDuplicateName = fmt.Errorf("a label with this name already exists: %w", models.ErrConflict)
)
