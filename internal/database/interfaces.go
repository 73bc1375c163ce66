// Package database defines repository interfaces for data access
package database

import (
	"context"

	"github.com/thenoetrevino/gtd/internal/models"
	"github.com/thenoetrevino/gtd/internal/types"
)

// TaskFilter narrows a task listing. Nil pointers mean "any".
type TaskFilter struct {
	SystemList *models.SystemList
	ProjectID  *int
	LabelID    *int
	Status     models.StatusFilter
	Archived   bool
}

// TaskRepository is the owner-scoped data access for tasks
type TaskRepository interface {
	CreateTask(ctx context.Context, task *models.Task) error
	GetTask(ctx context.Context, userID types.UserID, id int) (*models.Task, error)
	GetTasksByIDs(ctx context.Context, userID types.UserID, ids []int) ([]*models.Task, error)
	SaveTask(ctx context.Context, task *models.Task) error
	DeleteTask(ctx context.Context, userID types.UserID, id int) error
	ListTasks(ctx context.Context, userID types.UserID, filter TaskFilter) ([]*models.Task, error)
	ListUpcomingCandidates(ctx context.Context, userID types.UserID) ([]*models.Task, error)
	NextTaskSortOrder(ctx context.Context, userID types.UserID, list models.SystemList) (int, error)
	ShiftTaskSortOrders(ctx context.Context, userID types.UserID, list models.SystemList, excludeID int) error
	SetTaskSortOrder(ctx context.Context, userID types.UserID, id, sortOrder int) error
	ResolveTaskDetails(ctx context.Context, userID types.UserID, tasks []*models.Task) ([]*models.TaskDetail, error)
	AddLabelToTask(ctx context.Context, taskID, labelID int) error
	RemoveLabelFromTask(ctx context.Context, taskID, labelID int) error
}

// ProjectRepository is the owner-scoped data access for projects
type ProjectRepository interface {
	CreateProject(ctx context.Context, project *models.Project) error
	GetProject(ctx context.Context, userID types.UserID, id int) (*models.Project, error)
	ListProjects(ctx context.Context, userID types.UserID) ([]*models.Project, error)
	SaveProject(ctx context.Context, project *models.Project) error
	DeleteProject(ctx context.Context, userID types.UserID, id int) error
	NextProjectSortOrder(ctx context.Context, userID types.UserID) (int, error)
	CountOpenTasksByProject(ctx context.Context, userID types.UserID) (map[int]int, error)
}

// LabelRepository is the owner-scoped data access for labels
type LabelRepository interface {
	CreateLabel(ctx context.Context, label *models.Label) error
	GetLabel(ctx context.Context, userID types.UserID, id int) (*models.Label, error)
	FindLabelByName(ctx context.Context, userID types.UserID, name string) (*models.Label, error)
	ListLabels(ctx context.Context, userID types.UserID) ([]*models.Label, error)
	SaveLabel(ctx context.Context, label *models.Label) error
	DeleteLabel(ctx context.Context, userID types.UserID, id int) error
}

// UserRepository is the data access for accounts
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id types.UserID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// DataStore defines the unified interface for all data operations.
// It is composed of the domain-specific interfaces above; consumers that
// need a single concern should depend on the smaller interface.
type DataStore interface {
	TaskRepository
	ProjectRepository
	LabelRepository
	UserRepository

	// WithTx runs fn against a DataStore bound to one transaction
	WithTx(ctx context.Context, fn func(DataStore) error) error
}

// Compile-time verification that *Repository implements DataStore
var _ DataStore = (*Repository)(nil)
