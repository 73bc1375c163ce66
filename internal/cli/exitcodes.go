package cli

import (
	"errors"

	"github.com/thenoetrevino/gtd/internal/models"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: Database errors, server failures, or any error that doesn't
	// fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags, invalid flag combinations,
	// or when the user needs to provide different arguments.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: Unknown user email, task not found or owned by someone else.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: A config file that cannot be parsed or a duplicate account.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Invalid email, short password, bad list or status names,
	// or a configuration that fails validation.
	ExitValidation = 5
)

// ExitError carries the process exit code for a failed command
type ExitError struct {
	Code int
	Err  error

	// Reported is true once the formatter has printed the error
	Reported bool
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCodeFor maps an error onto an exit code
func ExitCodeFor(err error) int {
	var exitErr *ExitError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, models.ErrValidation):
		return ExitValidation
	case errors.Is(err, models.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, models.ErrConflict):
		return ExitDataErr
	}
	return ExitError
}

// Usage wraps err as a usage error
func Usage(err error) error {
	return &ExitError{Code: ExitUsage, Err: err}
}
