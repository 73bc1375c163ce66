package database

import (
	"context"

	"gorm.io/gorm"
)

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	db *gorm.DB
	*TaskRepo
	*ProjectRepo
	*LabelRepo
	*UserRepo
}

// NewRepository creates a new Repository instance wrapping the given handle.
// The handle may be a transaction.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:          db,
		TaskRepo:    &TaskRepo{db: db},
		ProjectRepo: &ProjectRepo{db: db},
		LabelRepo:   &LabelRepo{db: db},
		UserRepo:    &UserRepo{db: db},
	}
}

// WithTx runs fn inside a transaction. Every call fn makes through the
// given DataStore uses that transaction; the pool has a single connection,
// so fn must not touch the outer repository.
func (r *Repository) WithTx(ctx context.Context, fn func(DataStore) error) error {
	return withTx(ctx, r.db, func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

// DB exposes the underlying handle for health checks and maintenance
func (r *Repository) DB() *gorm.DB {
	return r.db
}
