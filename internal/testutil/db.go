package testutil

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/thenoetrevino/gtd/internal/database"
	"github.com/thenoetrevino/gtd/internal/models"
	"github.com/thenoetrevino/gtd/internal/types"
)

// SetupTestDB creates an in-memory database with the full schema.
// The database is closed when the test finishes.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.InitDB(context.Background(), database.MemoryPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := database.Close(db); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	})
	return db
}

// SetupTestRepo is SetupTestDB wrapped in a Repository
func SetupTestRepo(t *testing.T) *database.Repository {
	t.Helper()
	return database.NewRepository(SetupTestDB(t))
}

// CreateTestUser creates a user with a placeholder password hash
func CreateTestUser(t *testing.T, repo database.UserRepository, email string) types.UserID {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "not-a-real-hash", DisplayName: "Test User"}
	if err := repo.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user.ID
}

// CreateTestProject creates an active project and returns its ID
func CreateTestProject(t *testing.T, repo database.ProjectRepository, userID types.UserID, name string) int {
	t.Helper()
	ctx := context.Background()
	sortOrder, err := repo.NextProjectSortOrder(ctx, userID)
	if err != nil {
		t.Fatalf("Failed to get project sort order: %v", err)
	}
	project := &models.Project{UserID: userID, Name: name, Status: models.ProjectStatusActive, SortOrder: sortOrder}
	if err := repo.CreateProject(ctx, project); err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}
	return project.ID
}

// CreateTestLabel creates a label and returns its ID. An empty color leaves
// the label uncolored.
func CreateTestLabel(t *testing.T, repo database.LabelRepository, userID types.UserID, name, color string) int {
	t.Helper()
	label := &models.Label{UserID: userID, Name: name}
	if color != "" {
		label.Color = &color
	}
	if err := repo.CreateLabel(context.Background(), label); err != nil {
		t.Fatalf("Failed to create test label: %v", err)
	}
	return label.ID
}

// CreateTestTask creates an open task at the tail of list and returns its ID
func CreateTestTask(t *testing.T, repo database.TaskRepository, userID types.UserID, list models.SystemList, name string) int {
	t.Helper()
	return CreateTestTaskDue(t, repo, userID, list, name, nil)
}

// CreateTestTaskDue is CreateTestTask with a due date
func CreateTestTaskDue(t *testing.T, repo database.TaskRepository, userID types.UserID, list models.SystemList, name string, due *time.Time) int {
	t.Helper()
	ctx := context.Background()
	sortOrder, err := repo.NextTaskSortOrder(ctx, userID, list)
	if err != nil {
		t.Fatalf("Failed to get task sort order: %v", err)
	}
	task := &models.Task{
		UserID:     userID,
		Name:       name,
		Status:     models.TaskStatusOpen,
		SystemList: list,
		DueDate:    due,
		SortOrder:  sortOrder,
	}
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("Failed to create test task: %v", err)
	}
	return task.ID
}
