package database

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/thenoetrevino/gtd/internal/models"
	"github.com/thenoetrevino/gtd/internal/types"
)

// ProjectRepo handles pure data access for projects
type ProjectRepo struct {
	db *gorm.DB
}

// CreateProject inserts project and fills in its ID and timestamps
func (r *ProjectRepo) CreateProject(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return translate(err, "project")
	}
	return nil
}

// GetProject retrieves a project by ID if it belongs to userID
func (r *ProjectRepo) GetProject(ctx context.Context, userID types.UserID, id int) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&project).Error
	if err != nil {
		return nil, translate(err, "project")
	}
	return &project, nil
}

// ListProjects returns every project of userID in manual order
func (r *ProjectRepo) ListProjects(ctx context.Context, userID types.UserID) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("sort_order ASC").Order("id ASC").
		Find(&projects).Error
	if err != nil {
		return nil, translate(err, "projects")
	}
	return projects, nil
}

// SaveProject writes every column of project
func (r *ProjectRepo) SaveProject(ctx context.Context, project *models.Project) error {
	res := r.db.WithContext(ctx).
		Model(project).
		Where("user_id = ?", project.UserID).
		Select("*").
		Omit("id", "user_id", "created_at").
		Updates(project)
	return requireAffected(res, "project")
}

// DeleteProject removes a project. Its tasks survive with project_id set to
// NULL by the foreign key.
func (r *ProjectRepo) DeleteProject(ctx context.Context, userID types.UserID, id int) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Project{})
	return requireAffected(res, "project")
}

// NextProjectSortOrder returns the position after the last project
func (r *ProjectRepo) NextProjectSortOrder(ctx context.Context, userID types.UserID) (int, error) {
	var maxOrder sql.NullInt64
	err := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Select("MAX(sort_order)").
		Where("user_id = ?", userID).
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

type projectCountRow struct {
	ProjectID int
	Count     int
}

// CountOpenTasksByProject returns open task counts keyed by project ID.
// Projects without open tasks are absent from the map.
func (r *ProjectRepo) CountOpenTasksByProject(ctx context.Context, userID types.UserID) (map[int]int, error) {
	var rows []projectCountRow
	err := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Select("project_id, COUNT(*) AS count").
		Where("user_id = ? AND status = ? AND project_id IS NOT NULL", userID, models.TaskStatusOpen).
		Group("project_id").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err, "project task counts")
	}
	counts := make(map[int]int, len(rows))
	for _, row := range rows {
		counts[row.ProjectID] = row.Count
	}
	return counts, nil
}
