package models

import (
	"time"

	"github.com/thenoetrevino/gtd/internal/types"
)

// Label represents a tag that can be applied to tasks.
// Names are unique per owner, ignoring case.
type Label struct {
	ID        int          `gorm:"primaryKey"`
	UserID    types.UserID `gorm:"not null;index"`
	Name      string       `gorm:"not null"`
	Color     *string      // Hex color code (e.g., "#7D56F4")
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Label) TableName() string { return "labels" }

// Summary trims a label down to what task listings show
func (l *Label) Summary() *LabelSummary {
	return &LabelSummary{ID: l.ID, Name: l.Name, Color: l.Color}
}
