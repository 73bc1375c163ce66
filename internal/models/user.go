package models

import (
	"time"

	"github.com/thenoetrevino/gtd/internal/types"
)

// User owns tasks, projects and labels.
// Email is stored trimmed and lower-cased.
type User struct {
	ID           types.UserID `gorm:"primaryKey"`
	Email        string       `gorm:"not null"`
	PasswordHash string       `gorm:"not null"`
	DisplayName  string       `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string { return "users" }
