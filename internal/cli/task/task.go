package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/gtd/internal/cli"
	"github.com/thenoetrevino/gtd/internal/models"
	"github.com/thenoetrevino/gtd/internal/types"
)

// TaskCmd returns the task parent command
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Inspect a user's tasks",
		Long:  "Read-only views of the tasks stored for one account, selected with --email.",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())

	return cmd
}

// addOwnerFlag registers the --email flag naming whose tasks to read
func addOwnerFlag(cmd *cobra.Command) {
	cmd.Flags().String("email", "", "Email of the account that owns the tasks (required)")
	if err := cmd.MarkFlagRequired("email"); err != nil {
		slog.Error("Error marking email flag as required", "error", err)
	}
}

// lookupOwner resolves --email to a user id
func lookupOwner(ctx context.Context, cmd *cobra.Command, cliInstance *cli.CLI) (types.UserID, error) {
	email, _ := cmd.Flags().GetString("email")
	user, err := cliInstance.Repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return 0, fmt.Errorf("no user with email %s: %w", email, models.ErrNotFound)
		}
		return 0, err
	}
	return user.ID, nil
}

// taskResult is the JSON shape of a task
type taskResult struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	Description *string       `json:"description"`
	Priority    *string       `json:"priority"`
	Status      string        `json:"status"`
	SystemList  string        `json:"systemList"`
	DueDate     *time.Time    `json:"dueDate"`
	ProjectID   *int          `json:"projectId"`
	ProjectName *string       `json:"projectName"`
	SortOrder   int           `json:"sortOrder"`
	IsArchived  bool          `json:"isArchived"`
	CompletedAt *time.Time    `json:"completedAt"`
	Labels      []labelResult `json:"labels"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type labelResult struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Color *string `json:"color"`
}

func (r taskResult) GetID() int { return r.ID }

func toTaskResult(task *models.TaskDetail) taskResult {
	result := taskResult{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		Status:      string(task.Status),
		SystemList:  string(task.SystemList),
		DueDate:     task.DueDate,
		ProjectID:   task.ProjectID,
		ProjectName: task.ProjectName,
		SortOrder:   task.SortOrder,
		IsArchived:  task.IsArchived,
		CompletedAt: task.CompletedAt,
		Labels:      make([]labelResult, 0, len(task.Labels)),
		CreatedAt:   task.CreatedAt.UTC(),
		UpdatedAt:   task.UpdatedAt.UTC(),
	}
	if task.Priority != nil {
		p := string(*task.Priority)
		result.Priority = &p
	}
	for _, l := range task.Labels {
		result.Labels = append(result.Labels, labelResult{ID: l.ID, Name: l.Name, Color: l.Color})
	}
	return result
}

// formatDue renders a due date as a day, or a timestamp when it has a time
func formatDue(due time.Time) string {
	due = due.UTC()
	if due.Equal(due.Truncate(24 * time.Hour)) {
		return due.Format(time.DateOnly)
	}
	return due.Format("2006-01-02 15:04 MST")
}
