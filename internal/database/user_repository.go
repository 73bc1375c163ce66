package database

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/thenoetrevino/gtd/internal/models"
	"github.com/thenoetrevino/gtd/internal/types"
)

// UserRepo handles pure data access for accounts
type UserRepo struct {
	db *gorm.DB
}

// CreateUser inserts user; a duplicate email is ErrConflict
func (r *UserRepo) CreateUser(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return translate(err, "user")
	}
	return nil
}

// GetUser retrieves a user by ID
func (r *UserRepo) GetUser(ctx context.Context, id types.UserID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email, ignoring case
func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("email = ? COLLATE NOCASE", strings.TrimSpace(email)).
		First(&user).Error
	if err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}
