package models

import (
	"time"

	"github.com/thenoetrevino/gtd/internal/types"
)

// Task is a single todo item owned by one user
type Task struct {
	ID          int          `gorm:"primaryKey"`
	UserID      types.UserID `gorm:"not null;index"`
	Name        string       `gorm:"not null"`
	Description *string
	Priority    *Priority
	Status      TaskStatus `gorm:"not null"`
	SystemList  SystemList `gorm:"not null"`
	DueDate     *time.Time
	ProjectID   *int
	SortOrder   int  `gorm:"not null"`
	IsArchived  bool `gorm:"not null"`
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName pins the table created by the migrations
func (Task) TableName() string { return "tasks" }

// IsDone reports whether the task has been completed
func (t *Task) IsDone() bool {
	return t.Status == TaskStatusDone
}

// MarkDone completes the task; archived and completed-at follow the status
func (t *Task) MarkDone(now time.Time) {
	t.Status = TaskStatusDone
	t.IsArchived = true
	t.CompletedAt = &now
}

// MarkOpen reverses MarkDone
func (t *Task) MarkOpen() {
	t.Status = TaskStatusOpen
	t.IsArchived = false
	t.CompletedAt = nil
}

// TaskLabel joins tasks and labels
type TaskLabel struct {
	TaskID  int `gorm:"primaryKey;autoIncrement:false"`
	LabelID int `gorm:"primaryKey;autoIncrement:false"`
}

func (TaskLabel) TableName() string { return "task_labels" }

// LabelSummary is the slice of a label shown alongside a task
type LabelSummary struct {
	ID    int
	Name  string
	Color *string
}

// TaskDetail is a task with its project name and labels resolved
type TaskDetail struct {
	Task
	ProjectName *string
	Labels      []*LabelSummary
}

// TaskList is the result of a task query
type TaskList struct {
	Tasks      []*TaskDetail
	TotalCount int
}
