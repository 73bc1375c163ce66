package task

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/thenoetrevino/gtd/internal/database"
	"github.com/thenoetrevino/gtd/internal/models"
	"github.com/thenoetrevino/gtd/internal/types"
)

// Service defines all task-related business operations.
// Every call is scoped to the owner named in its request.
type Service interface {
	// Read operations
	ListTasks(ctx context.Context, req ListTasksRequest) (*models.TaskList, error)
	GetTask(ctx context.Context, userID types.UserID, taskID int) (*models.TaskDetail, error)

	// Write operations
	CreateTask(ctx context.Context, req CreateTaskRequest) (*models.TaskDetail, error)
	UpdateTask(ctx context.Context, req UpdateTaskRequest) (*models.TaskDetail, error)
	DeleteTask(ctx context.Context, userID types.UserID, taskID int) error

	// Lifecycle
	CompleteTask(ctx context.Context, userID types.UserID, taskID int) (*models.TaskDetail, error)
	ReopenTask(ctx context.Context, userID types.UserID, taskID int) (*models.TaskDetail, error)
	ReorderTasks(ctx context.Context, req ReorderTasksRequest) error

	// Label management
	AttachLabel(ctx context.Context, userID types.UserID, taskID, labelID int) error
	DetachLabel(ctx context.Context, userID types.UserID, taskID, labelID int) error
}

// ListTasksRequest carries the raw query filters.
// Empty strings and nil pointers mean "not given".
type ListTasksRequest struct {
	UserID     types.UserID
	SystemList string
	ProjectID  *int
	LabelID    *int
	Status     string
	Archived   *bool
	View       string
}

// CreateTaskRequest encapsulates all data needed to create a task
type CreateTaskRequest struct {
	UserID      types.UserID
	Name        string
	Description *string
	Priority    string // Optional: empty means P4
	SystemList  string // Optional: empty means Inbox
	DueDate     string // Optional: RFC 3339 or YYYY-MM-DD
	ProjectID   *int
	LabelIDs    []int
}

// UpdateTaskRequest encapsulates a partial update.
// Unset fields are left alone; null clears the optional ones.
type UpdateTaskRequest struct {
	UserID      types.UserID
	TaskID      int
	Name        types.Optional[string]
	Description types.Optional[string]
	Priority    types.Optional[string]
	SystemList  types.Optional[string]
	DueDate     types.Optional[string]
	ProjectID   types.Optional[int]
}

// ReorderTasksRequest assigns sort orders by position in TaskIDs
type ReorderTasksRequest struct {
	UserID     types.UserID
	SystemList string
	TaskIDs    []int
}

// service implements Service interface
type service struct {
	repo database.DataStore
	now  func() time.Time
}

// NewService creates a new task service
func NewService(repo database.DataStore) Service {
	return &service{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// ============================================================================
// READ OPERATIONS
// ============================================================================

// ListTasks returns the filtered task collection, or the Upcoming view when
// req.View asks for it
func (s *service) ListTasks(ctx context.Context, req ListTasksRequest) (*models.TaskList, error) {
	filter, upcoming, err := s.validateListTasks(req)
	if err != nil {
		return nil, err
	}

	var tasks []*models.Task
	if upcoming {
		candidates, err := s.repo.ListUpcomingCandidates(ctx, req.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to list upcoming tasks: %w", err)
		}
		tasks = SelectUpcoming(candidates, s.now())
	} else {
		tasks, err = s.repo.ListTasks(ctx, req.UserID, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to list tasks: %w", err)
		}
	}

	details, err := s.repo.ResolveTaskDetails(ctx, req.UserID, tasks)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve task details: %w", err)
	}
	return &models.TaskList{Tasks: details, TotalCount: len(details)}, nil
}

// GetTask returns a single task with its project name and labels
func (s *service) GetTask(ctx context.Context, userID types.UserID, taskID int) (*models.TaskDetail, error) {
	task, err := s.repo.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, notFound(err, ErrTaskNotFound, "get task")
	}
	return s.detail(ctx, s.repo, task)
}

// ============================================================================
// WRITE OPERATIONS
// ============================================================================

// CreateTask validates req and appends the new task to the tail of its list.
// Ownership checks, the insert and label links share one transaction.
func (s *service) CreateTask(ctx context.Context, req CreateTaskRequest) (*models.TaskDetail, error) {
	task, err := s.validateCreateTask(req)
	if err != nil {
		return nil, err
	}

	err = s.repo.WithTx(ctx, func(tx database.DataStore) error {
		if task.ProjectID != nil {
			if _, err := tx.GetProject(ctx, req.UserID, *task.ProjectID); err != nil {
				return notFound(err, ErrProjectNotFound, "get project")
			}
		}
		for _, labelID := range req.LabelIDs {
			if _, err := tx.GetLabel(ctx, req.UserID, labelID); err != nil {
				return notFound(err, ErrLabelNotFound, "get label")
			}
		}

		sortOrder, err := tx.NextTaskSortOrder(ctx, req.UserID, task.SystemList)
		if err != nil {
			return fmt.Errorf("failed to compute sort order: %w", err)
		}
		task.SortOrder = sortOrder

		if err := tx.CreateTask(ctx, task); err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}
		for _, labelID := range req.LabelIDs {
			if err := tx.AddLabelToTask(ctx, task.ID, labelID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("task created", "task_id", task.ID, "user_id", req.UserID, "list", task.SystemList)
	return s.detail(ctx, s.repo, task)
}

// UpdateTask applies the fields present in req. A move to another system
// list appends the task to the tail of the destination.
func (s *service) UpdateTask(ctx context.Context, req UpdateTaskRequest) (*models.TaskDetail, error) {
	changes, err := s.validateUpdateTask(req)
	if err != nil {
		return nil, err
	}

	var updated *models.Task
	err = s.repo.WithTx(ctx, func(tx database.DataStore) error {
		task, err := tx.GetTask(ctx, req.UserID, req.TaskID)
		if err != nil {
			return notFound(err, ErrTaskNotFound, "get task")
		}

		if req.ProjectID.Set && req.ProjectID.Value != nil {
			if _, err := tx.GetProject(ctx, req.UserID, *req.ProjectID.Value); err != nil {
				return notFound(err, ErrProjectNotFound, "get project")
			}
		}

		previousList := task.SystemList
		changes.apply(task)

		if task.SystemList != previousList {
			sortOrder, err := tx.NextTaskSortOrder(ctx, req.UserID, task.SystemList)
			if err != nil {
				return fmt.Errorf("failed to compute sort order: %w", err)
			}
			task.SortOrder = sortOrder
		}

		if err := tx.SaveTask(ctx, task); err != nil {
			return notFound(err, ErrTaskNotFound, "update task")
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.detail(ctx, s.repo, updated)
}

// DeleteTask hard-deletes a task; its label links go with it
func (s *service) DeleteTask(ctx context.Context, userID types.UserID, taskID int) error {
	if err := s.repo.DeleteTask(ctx, userID, taskID); err != nil {
		return notFound(err, ErrTaskNotFound, "delete task")
	}
	slog.Debug("task deleted", "task_id", taskID, "user_id", userID)
	return nil
}

// ============================================================================
// LIFECYCLE
// ============================================================================

// CompleteTask marks a task done. Completing a done task only refreshes its
// updated-at timestamp.
func (s *service) CompleteTask(ctx context.Context, userID types.UserID, taskID int) (*models.TaskDetail, error) {
	task, err := s.repo.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, notFound(err, ErrTaskNotFound, "get task")
	}

	if !task.IsDone() {
		task.MarkDone(s.now())
	}
	if err := s.repo.SaveTask(ctx, task); err != nil {
		return nil, notFound(err, ErrTaskNotFound, "complete task")
	}

	return s.detail(ctx, s.repo, task)
}

// ReopenTask returns a done task to the top of its list, shifting the other
// open tasks of that list down by one. Reopening an open task is a no-op.
func (s *service) ReopenTask(ctx context.Context, userID types.UserID, taskID int) (*models.TaskDetail, error) {
	var reopened *models.Task
	err := s.repo.WithTx(ctx, func(tx database.DataStore) error {
		task, err := tx.GetTask(ctx, userID, taskID)
		if err != nil {
			return notFound(err, ErrTaskNotFound, "get task")
		}
		reopened = task
		if !task.IsDone() {
			return nil
		}

		if err := tx.ShiftTaskSortOrders(ctx, userID, task.SystemList, task.ID); err != nil {
			return fmt.Errorf("failed to make room for reopened task: %w", err)
		}
		task.MarkOpen()
		task.SortOrder = 0
		if err := tx.SaveTask(ctx, task); err != nil {
			return notFound(err, ErrTaskNotFound, "reopen task")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.detail(ctx, s.repo, reopened)
}

// ReorderTasks assigns sort order = index in req.TaskIDs. Every id is
// checked before anything is written, and all writes share a transaction.
func (s *service) ReorderTasks(ctx context.Context, req ReorderTasksRequest) error {
	list, err := validateReorderTasks(req)
	if err != nil {
		return err
	}

	return s.repo.WithTx(ctx, func(tx database.DataStore) error {
		tasks, err := tx.GetTasksByIDs(ctx, req.UserID, req.TaskIDs)
		if err != nil {
			return fmt.Errorf("failed to load tasks: %w", err)
		}
		if len(tasks) != len(req.TaskIDs) {
			return ErrTaskNotFound
		}
		for _, t := range tasks {
			if t.SystemList != list {
				return models.NewFieldError("taskIds", fmt.Errorf("task %d: %w", t.ID, ErrWrongSystemList))
			}
		}

		for i, id := range req.TaskIDs {
			if err := tx.SetTaskSortOrder(ctx, req.UserID, id, i); err != nil {
				return notFound(err, ErrTaskNotFound, "reorder tasks")
			}
		}
		return nil
	})
}

// ============================================================================
// LABEL MANAGEMENT
// ============================================================================

// AttachLabel links an owned label to an owned task. Attaching twice is a no-op.
func (s *service) AttachLabel(ctx context.Context, userID types.UserID, taskID, labelID int) error {
	if err := s.checkTaskAndLabel(ctx, userID, taskID, labelID); err != nil {
		return err
	}
	if err := s.repo.AddLabelToTask(ctx, taskID, labelID); err != nil {
		return fmt.Errorf("failed to attach label: %w", err)
	}
	return nil
}

// DetachLabel unlinks a label. Detaching a label that was never attached is
// a no-op.
func (s *service) DetachLabel(ctx context.Context, userID types.UserID, taskID, labelID int) error {
	if err := s.checkTaskAndLabel(ctx, userID, taskID, labelID); err != nil {
		return err
	}
	if err := s.repo.RemoveLabelFromTask(ctx, taskID, labelID); err != nil {
		return fmt.Errorf("failed to detach label: %w", err)
	}
	return nil
}

func (s *service) checkTaskAndLabel(ctx context.Context, userID types.UserID, taskID, labelID int) error {
	if _, err := s.repo.GetTask(ctx, userID, taskID); err != nil {
		return notFound(err, ErrTaskNotFound, "get task")
	}
	if _, err := s.repo.GetLabel(ctx, userID, labelID); err != nil {
		return notFound(err, ErrLabelNotFound, "get label")
	}
	return nil
}

// ============================================================================
// HELPERS
// ============================================================================

// detail resolves a single task into its projection
func (s *service) detail(ctx context.Context, repo database.TaskRepository, task *models.Task) (*models.TaskDetail, error) {
	details, err := repo.ResolveTaskDetails(ctx, task.UserID, []*models.Task{task})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve task details: %w", err)
	}
	return details[0], nil
}

// taskChanges holds a validated UpdateTaskRequest ready to apply
type taskChanges struct {
	req         UpdateTaskRequest
	name        string
	priority    *models.Priority
	systemList  models.SystemList
	dueDate     *time.Time
	description *string
}

func (c taskChanges) apply(task *models.Task) {
	if c.req.Name.Set {
		task.Name = c.name
	}
	if c.req.Description.Set {
		task.Description = c.description
	}
	if c.req.Priority.Set {
		task.Priority = c.priority
	}
	if c.req.SystemList.Set {
		task.SystemList = c.systemList
	}
	if c.req.DueDate.Set {
		task.DueDate = c.dueDate
	}
	if c.req.ProjectID.Set {
		task.ProjectID = c.req.ProjectID.Value
	}
}

// ============================================================================
// VALIDATION
// ============================================================================

func (s *service) validateListTasks(req ListTasksRequest) (database.TaskFilter, bool, error) {
	var errs models.ValidationErrors
	filter := database.TaskFilter{ProjectID: req.ProjectID, LabelID: req.LabelID}

	upcoming := false
	if req.View != "" {
		if strings.EqualFold(strings.TrimSpace(req.View), "upcoming") {
			upcoming = true
		} else {
			errs.Add("view", ErrInvalidView)
		}
	}

	if req.SystemList != "" {
		list, err := models.ParseSystemList(req.SystemList)
		if err != nil {
			errs.Add("systemList", err)
		} else {
			filter.SystemList = &list
		}
	}

	if req.Archived != nil {
		filter.Archived = *req.Archived
	}

	switch {
	case req.Status != "":
		status, err := models.ParseStatusFilter(req.Status)
		if err != nil {
			errs.Add("status", err)
		}
		filter.Status = status
	case filter.Archived:
		filter.Status = models.StatusFilterDone
	default:
		filter.Status = models.StatusFilterOpen
	}

	return filter, upcoming, errs.Err()
}

func (s *service) validateCreateTask(req CreateTaskRequest) (*models.Task, error) {
	var errs models.ValidationErrors
	task := &models.Task{
		UserID:     req.UserID,
		Status:     models.TaskStatusOpen,
		SystemList: models.SystemListInbox,
		ProjectID:  req.ProjectID,
	}

	name, err := validateName(req.Name)
	if err != nil {
		errs.Add("name", err)
	}
	task.Name = name

	if req.Description != nil {
		if err := validateDescription(*req.Description); err != nil {
			errs.Add("description", err)
		}
		task.Description = req.Description
	}

	priority := models.DefaultPriority
	if req.Priority != "" {
		if priority, err = models.ParsePriority(req.Priority); err != nil {
			errs.Add("priority", err)
		}
	}
	task.Priority = &priority

	if req.SystemList != "" {
		if task.SystemList, err = models.ParseSystemList(req.SystemList); err != nil {
			errs.Add("systemList", err)
		}
	}

	if req.DueDate != "" {
		due, err := parseDueDate(req.DueDate)
		if err != nil {
			errs.Add("dueDate", err)
		}
		task.DueDate = due
	}

	return task, errs.Err()
}

func (s *service) validateUpdateTask(req UpdateTaskRequest) (taskChanges, error) {
	var errs models.ValidationErrors
	changes := taskChanges{req: req}

	if req.Name.Set {
		if req.Name.Value == nil {
			errs.Add("name", ErrNullNotAllowed)
		} else if name, err := validateName(*req.Name.Value); err != nil {
			errs.Add("name", err)
		} else {
			changes.name = name
		}
	}

	if req.Description.Value != nil {
		if err := validateDescription(*req.Description.Value); err != nil {
			errs.Add("description", err)
		}
		changes.description = req.Description.Value
	}

	if req.Priority.Value != nil {
		p, err := models.ParsePriority(*req.Priority.Value)
		if err != nil {
			errs.Add("priority", err)
		}
		changes.priority = &p
	}

	if req.SystemList.Set {
		if req.SystemList.Value == nil {
			errs.Add("systemList", ErrNullNotAllowed)
		} else if list, err := models.ParseSystemList(*req.SystemList.Value); err != nil {
			errs.Add("systemList", err)
		} else {
			changes.systemList = list
		}
	}

	if req.DueDate.Value != nil {
		due, err := parseDueDate(*req.DueDate.Value)
		if err != nil {
			errs.Add("dueDate", err)
		}
		changes.dueDate = due
	}

	return changes, errs.Err()
}

func validateReorderTasks(req ReorderTasksRequest) (models.SystemList, error) {
	var errs models.ValidationErrors

	list, err := models.ParseSystemList(req.SystemList)
	if err != nil {
		errs.Add("systemList", err)
	}

	if len(req.TaskIDs) == 0 {
		errs.Add("taskIds", ErrEmptyReorder)
	}
	seen := make(map[int]struct{}, len(req.TaskIDs))
	for _, id := range req.TaskIDs {
		if _, dup := seen[id]; dup {
			errs.Add("taskIds", ErrDuplicateTaskID)
			break
		}
		seen[id] = struct{}{}
	}

	return list, errs.Err()
}

// validateName trims name and checks it is present and short enough
func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if utf8.RuneCountInString(name) > models.MaxTaskNameLength {
		return "", ErrNameTooLong
	}
	return name, nil
}

func validateDescription(desc string) error {
	if utf8.RuneCountInString(desc) > models.MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

// parseDueDate wraps models.ParseDueDate for optional fields
func parseDueDate(s string) (*time.Time, error) {
	t, err := models.ParseDueDate(s)
	if err != nil {
		return nil, ErrInvalidDueDate
	}
	return &t, nil
}
