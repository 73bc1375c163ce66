package database

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thenoetrevino/gtd/internal/models"
	"github.com/thenoetrevino/gtd/internal/types"
)

// TaskRepo handles pure data access for tasks.
// No business logic, no validation - just owner-scoped database operations.
type TaskRepo struct {
	db *gorm.DB
}

// ============================================================================
// CRUD OPERATIONS
// ============================================================================

// CreateTask inserts task and fills in its ID and timestamps
func (r *TaskRepo) CreateTask(ctx context.Context, task *models.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return translate(err, "task")
	}
	return nil
}

// GetTask retrieves a task by ID if it belongs to userID
func (r *TaskRepo) GetTask(ctx context.Context, userID types.UserID, id int) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&task).Error
	if err != nil {
		return nil, translate(err, "task")
	}
	return &task, nil
}

// GetTasksByIDs retrieves the subset of ids that belong to userID
func (r *TaskRepo) GetTasksByIDs(ctx context.Context, userID types.UserID, ids []int) ([]*models.Task, error) {
	var tasks []*models.Task
	if len(ids) == 0 {
		return tasks, nil
	}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Find(&tasks).Error
	if err != nil {
		return nil, translate(err, "tasks")
	}
	return tasks, nil
}

// SaveTask writes every column of task
func (r *TaskRepo) SaveTask(ctx context.Context, task *models.Task) error {
	res := r.db.WithContext(ctx).
		Model(task).
		Where("user_id = ?", task.UserID).
		Select("*").
		Omit("id", "user_id", "created_at").
		Updates(task)
	return requireAffected(res, "task")
}

// DeleteTask removes a task; task_labels rows go with it via ON DELETE CASCADE
func (r *TaskRepo) DeleteTask(ctx context.Context, userID types.UserID, id int) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Task{})
	return requireAffected(res, "task")
}

// ============================================================================
// QUERIES
// ============================================================================

// ListTasks composes the filter into a single query.
// Done listings are ordered by completion time, everything else by the
// manual sort order.
func (r *TaskRepo) ListTasks(ctx context.Context, userID types.UserID, filter TaskFilter) ([]*models.Task, error) {
	q := r.db.WithContext(ctx).Model(&models.Task{}).Where("tasks.user_id = ?", userID)

	switch filter.Status {
	case models.StatusFilterOpen:
		q = q.Where("tasks.status = ?", models.TaskStatusOpen)
	case models.StatusFilterDone:
		q = q.Where("tasks.status = ?", models.TaskStatusDone)
	}
	if filter.Status != models.StatusFilterAll {
		q = q.Where("tasks.is_archived = ?", filter.Archived)
	}

	if filter.SystemList != nil {
		q = q.Where("tasks.system_list = ?", *filter.SystemList)
	}
	if filter.ProjectID != nil {
		q = q.Where("tasks.project_id = ?", *filter.ProjectID)
	}
	if filter.LabelID != nil {
		q = q.Where("EXISTS (SELECT 1 FROM task_labels tl WHERE tl.task_id = tasks.id AND tl.label_id = ?)", *filter.LabelID)
	}

	if filter.Status == models.StatusFilterDone {
		q = q.Order("tasks.completed_at DESC").Order("tasks.id DESC")
	} else {
		q = q.Order("tasks.sort_order ASC").Order("tasks.id ASC")
	}

	var tasks []*models.Task
	if err := q.Find(&tasks).Error; err != nil {
		return nil, translate(err, "tasks")
	}
	return tasks, nil
}

// ListUpcomingCandidates returns the open tasks that could appear in the
// Upcoming view: everything dated plus everything in the Upcoming list.
// The date window itself is applied by the caller.
func (r *TaskRepo) ListUpcomingCandidates(ctx context.Context, userID types.UserID) ([]*models.Task, error) {
	var tasks []*models.Task
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND is_archived = ?", userID, models.TaskStatusOpen, false).
		Where("due_date IS NOT NULL OR system_list = ?", models.SystemListUpcoming).
		Order("sort_order ASC").Order("id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, translate(err, "tasks")
	}
	return tasks, nil
}

// ============================================================================
// SORT ORDER
// ============================================================================

// NextTaskSortOrder returns the position after the last open task in list
func (r *TaskRepo) NextTaskSortOrder(ctx context.Context, userID types.UserID, list models.SystemList) (int, error) {
	var maxOrder sql.NullInt64
	err := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Select("MAX(sort_order)").
		Where("user_id = ? AND system_list = ? AND status = ?", userID, list, models.TaskStatusOpen).
		Row().
		Scan(&maxOrder)
	if err != nil {
		return 0, translate(err, "sort order")
	}
	if !maxOrder.Valid {
		return 0, nil
	}
	return int(maxOrder.Int64) + 1, nil
}

// ShiftTaskSortOrders moves every open task in list one slot down, making
// room at position 0. excludeID is left untouched.
func (r *TaskRepo) ShiftTaskSortOrders(ctx context.Context, userID types.UserID, list models.SystemList, excludeID int) error {
	err := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("user_id = ? AND system_list = ? AND status = ? AND id <> ?", userID, list, models.TaskStatusOpen, excludeID).
		UpdateColumn("sort_order", gorm.Expr("sort_order + 1")).Error
	if err != nil {
		return translate(err, "sort order")
	}
	return nil
}

// SetTaskSortOrder writes a single task's position
func (r *TaskRepo) SetTaskSortOrder(ctx context.Context, userID types.UserID, id, sortOrder int) error {
	res := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ? AND user_id = ?", id, userID).
		UpdateColumn("sort_order", sortOrder)
	return requireAffected(res, "task")
}

// ============================================================================
// PROJECTIONS
// ============================================================================

type taskLabelRow struct {
	TaskID int
	ID     int
	Name   string
	Color  *string
}

// ResolveTaskDetails attaches project names and label summaries to tasks
// using two batched queries
func (r *TaskRepo) ResolveTaskDetails(ctx context.Context, userID types.UserID, tasks []*models.Task) ([]*models.TaskDetail, error) {
	details := make([]*models.TaskDetail, len(tasks))
	if len(tasks) == 0 {
		return details, nil
	}

	taskIDs := make([]int, 0, len(tasks))
	projectIDs := make([]int, 0, len(tasks))
	for _, t := range tasks {
		taskIDs = append(taskIDs, t.ID)
		if t.ProjectID != nil {
			projectIDs = append(projectIDs, *t.ProjectID)
		}
	}

	projectNames := make(map[int]string)
	if len(projectIDs) > 0 {
		var projects []models.Project
		err := r.db.WithContext(ctx).
			Select("id", "name").
			Where("user_id = ? AND id IN ?", userID, projectIDs).
			Find(&projects).Error
		if err != nil {
			return nil, translate(err, "projects")
		}
		for _, p := range projects {
			projectNames[p.ID] = p.Name
		}
	}

	var rows []taskLabelRow
	err := r.db.WithContext(ctx).
		Table("task_labels").
		Select("task_labels.task_id, labels.id, labels.name, labels.color").
		Joins("JOIN labels ON labels.id = task_labels.label_id").
		Where("labels.user_id = ? AND task_labels.task_id IN ?", userID, taskIDs).
		Order("labels.name COLLATE NOCASE ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err, "task labels")
	}
	labels := make(map[int][]*models.LabelSummary)
	for _, row := range rows {
		labels[row.TaskID] = append(labels[row.TaskID], &models.LabelSummary{ID: row.ID, Name: row.Name, Color: row.Color})
	}

	for i, t := range tasks {
		d := &models.TaskDetail{Task: *t, Labels: labels[t.ID]}
		if d.Labels == nil {
			d.Labels = []*models.LabelSummary{}
		}
		if t.ProjectID != nil {
			if name, ok := projectNames[*t.ProjectID]; ok {
				d.ProjectName = &name
			}
		}
		details[i] = d
	}
	return details, nil
}

// ============================================================================
// LABEL ASSOCIATIONS
// ============================================================================

// AddLabelToTask links a label to a task; linking twice is a no-op
func (r *TaskRepo) AddLabelToTask(ctx context.Context, taskID, labelID int) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.TaskLabel{TaskID: taskID, LabelID: labelID}).Error
	if err != nil {
		return fmt.Errorf("failed to attach label %d to task %d: %w", labelID, taskID, err)
	}
	return nil
}

// RemoveLabelFromTask unlinks a label; unlinking a missing link is a no-op
func (r *TaskRepo) RemoveLabelFromTask(ctx context.Context, taskID, labelID int) error {
	err := r.db.WithContext(ctx).
		Where("task_id = ? AND label_id = ?", taskID, labelID).
		Delete(&models.TaskLabel{}).Error
	if err != nil {
		return fmt.Errorf("failed to detach label %d from task %d: %w", labelID, taskID, err)
	}
	return nil
}
