package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/thenoetrevino/gtd/internal/models"
)

// withTx executes a function within a database transaction.
// GORM rolls back when fn returns an error and commits otherwise.
func withTx(ctx context.Context, db *gorm.DB, fn func(*gorm.DB) error) error {
	if err := db.WithContext(ctx).Transaction(fn); err != nil {
		return err
	}
	return nil
}

// translate maps driver and ORM errors onto the shared error kinds
func translate(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %w", what, models.ErrNotFound)
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%s already exists: %w", what, models.ErrConflict)
	}
	return fmt.Errorf("%s: %w", what, err)
}

// isUniqueViolation reports whether err came from a UNIQUE constraint.
// modernc reports constraint failures only through the message text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// requireAffected turns an owner-scoped write that touched nothing into a
// not-found error
func requireAffected(res *gorm.DB, what string) error {
	if res.Error != nil {
		return translate(res.Error, what)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s %w", what, models.ErrNotFound)
	}
	return nil
}
