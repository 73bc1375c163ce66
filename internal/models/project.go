package models

import (
	"time"

	"github.com/thenoetrevino/gtd/internal/types"
)

// Project groups tasks under a shared goal
type Project struct {
	ID          int          `gorm:"primaryKey"`
	UserID      types.UserID `gorm:"not null;index"`
	Name        string       `gorm:"not null"`
	Description *string
	DueDate     *time.Time
	Status      ProjectStatus `gorm:"not null"`
	SortOrder   int           `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Project) TableName() string { return "projects" }

// ProjectSummary is a project plus the number of open tasks in it
type ProjectSummary struct {
	Project
	OpenTaskCount int
}
