package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/thenoetrevino/gtd/internal/models"
	"github.com/thenoetrevino/gtd/internal/types"
)

// LabelRepo handles pure data access for labels
type LabelRepo struct {
	db *gorm.DB
}

// CreateLabel inserts label; a name clash for the same owner is ErrConflict
func (r *LabelRepo) CreateLabel(ctx context.Context, label *models.Label) error {
	if err := r.db.WithContext(ctx).Create(label).Error; err != nil {
		return translate(err, "label")
	}
	return nil
}

// GetLabel retrieves a label by ID if it belongs to userID
func (r *LabelRepo) GetLabel(ctx context.Context, userID types.UserID, id int) (*models.Label, error) {
	var label models.Label
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&label).Error
	if err != nil {
		return nil, translate(err, "label")
	}
	return &label, nil
}

// FindLabelByName looks a label up ignoring case
func (r *LabelRepo) FindLabelByName(ctx context.Context, userID types.UserID, name string) (*models.Label, error) {
	var label models.Label
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ? COLLATE NOCASE", userID, name).
		First(&label).Error
	if err != nil {
		return nil, translate(err, "label")
	}
	return &label, nil
}

// ListLabels returns every label of userID ordered by name
func (r *LabelRepo) ListLabels(ctx context.Context, userID types.UserID) ([]*models.Label, error) {
	var labels []*models.Label
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name COLLATE NOCASE ASC").Order("id ASC").
		Find(&labels).Error
	if err != nil {
		return nil, translate(err, "labels")
	}
	return labels, nil
}

// SaveLabel writes every column of label
func (r *LabelRepo) SaveLabel(ctx context.Context, label *models.Label) error {
	res := r.db.WithContext(ctx).
		Model(label).
		Where("user_id = ?", label.UserID).
		Select("*").
		Omit("id", "user_id", "created_at").
		Updates(label)
	return requireAffected(res, "label")
}

// DeleteLabel removes a label and, via ON DELETE CASCADE, its task links
func (r *LabelRepo) DeleteLabel(ctx context.Context, userID types.UserID, id int) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Label{})
	return requireAffected(res, "label")
}
