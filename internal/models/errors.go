package models

import (
	"errors"
	"strings"
)

// Error kinds shared by every service. Service-specific sentinels wrap one of
// these with %w so the HTTP layer can map them to a status code.
var (
	// ErrNotFound covers both missing rows and rows owned by another user
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a unique constraint would be violated
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized indicates missing or invalid credentials
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation is matched by every FieldError
	ErrValidation = errors.New("validation failed")
)

// FieldError ties a validation failure to the request field that caused it
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Is makes every FieldError match ErrValidation
func (e *FieldError) Is(target error) bool {
	return target == ErrValidation
}

// NewFieldError wraps err as a validation failure on field
func NewFieldError(field string, err error) *FieldError {
	return &FieldError{Field: field, Err: err}
}

// ValidationErrors collects every field failure of a single request
type ValidationErrors []*FieldError

// Add appends a failure for field
func (v *ValidationErrors) Add(field string, err error) {
	*v = append(*v, NewFieldError(field, err))
}

// Err returns nil when nothing was collected
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) Unwrap() []error {
	errs := make([]error, len(v))
	for i, fe := range v {
		errs[i] = fe
	}
	return errs
}

// Fields groups messages by field name for the response envelope
func (v ValidationErrors) Fields() map[string][]string {
	out := make(map[string][]string, len(v))
	for _, fe := range v {
		out[fe.Field] = append(out[fe.Field], fe.Err.Error())
	}
	return out
}
