package auth

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/gtd/internal/models"
)

// Auth-related errors
var (
	// Validation errors
	ErrInvalidEmail       = errors.New("must be a valid email address")
	ErrPasswordTooShort   = fmt.Errorf("must be at least %d characters", models.MinPasswordLength)
	ErrPasswordTooLong    = errors.New("cannot exceed 72 bytes")
	ErrDisplayNameTooLong = fmt.Errorf("cannot exceed %d characters", models.MaxDisplayNameLength)
	ErrEmailAlreadyInUse  = fmt.Errorf("email is already registered: %w", models.ErrConflict)

	// Authentication errors. Login failures share one message so callers
	// cannot probe which emails exist.
	ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", models.ErrUnauthorized)
	ErrInvalidToken       = fmt.Errorf("invalid or expired token: %w", models.ErrUnauthorized)
	ErrUserGone           = fmt.Errorf("user no longer exists: %w", models.ErrUnauthorized)

	// Configuration errors
	ErrWeakSecret = fmt.Errorf("jwt secret must be at least %d bytes", MinSecretLength)
)
