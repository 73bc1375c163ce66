package label

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/thenoetrevino/gtd/internal/database"
	"github.com/thenoetrevino/gtd/internal/models"
	"github.com/thenoetrevino/gtd/internal/types"
)

// Hex color regex pattern
var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Service defines all label-related business operations
type Service interface {
	// Read operations
	ListLabels(ctx context.Context, userID types.UserID) ([]*models.Label, error)
	GetLabel(ctx context.Context, userID types.UserID, id int) (*models.Label, error)

	// Write operations
	CreateLabel(ctx context.Context, req CreateLabelRequest) (*models.Label, error)
	UpdateLabel(ctx context.Context, req UpdateLabelRequest) (*models.Label, error)
	DeleteLabel(ctx context.Context, userID types.UserID, id int) error
}

// CreateLabelRequest encapsulates data for creating a label
type CreateLabelRequest struct {
	UserID types.UserID
	Name   string
	Color  *string // Hex color like #FF5733, nil for none
}

// UpdateLabelRequest encapsulates data for updating a label.
// A null Color removes the color.
type UpdateLabelRequest struct {
	UserID types.UserID
	ID     int
	Name   types.Optional[string]
	Color  types.Optional[string]
}

// service implements Service interface
type service struct {
	repo database.LabelRepository
}

// NewService creates a new label service
func NewService(repo database.LabelRepository) Service {
	return &service{repo: repo}
}

// ListLabels retrieves all labels of the owner ordered by name
func (s *service) ListLabels(ctx context.Context, userID types.UserID) ([]*models.Label, error) {
	labels, err := s.repo.ListLabels(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	return labels, nil
}

// GetLabel retrieves a single label
func (s *service) GetLabel(ctx context.Context, userID types.UserID, id int) (*models.Label, error) {
	label, err := s.repo.GetLabel(ctx, userID, id)
	if err != nil {
		return nil, wrap(err, "get label")
	}
	return label, nil
}

// CreateLabel creates a new label with validation
func (s *service) CreateLabel(ctx context.Context, req CreateLabelRequest) (*models.Label, error) {
	var errs models.ValidationErrors

	name, err := validateName(req.Name)
	if err != nil {
		errs.Add("name", err)
	}
	if req.Color != nil && !hexColorRegex.MatchString(*req.Color) {
		errs.Add("color", ErrInvalidColor)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	label := &models.Label{UserID: req.UserID, Name: name, Color: req.Color}
	if err := s.repo.CreateLabel(ctx, label); err != nil {
		return nil, wrap(err, "create label")
	}
	return label, nil
}

// UpdateLabel renames or recolors a label
func (s *service) UpdateLabel(ctx context.Context, req UpdateLabelRequest) (*models.Label, error) {
	var errs models.ValidationErrors

	label, err := s.repo.GetLabel(ctx, req.UserID, req.ID)
	if err != nil {
		return nil, wrap(err, "get label")
	}

	if req.Name.Set {
		if req.Name.Value == nil {
			errs.Add("name", ErrNullNotAllowed)
		} else if name, err := validateName(*req.Name.Value); err != nil {
			errs.Add("name", err)
		} else {
			label.Name = name
		}
	}

	if req.Color.Set {
		if req.Color.Value != nil && !hexColorRegex.MatchString(*req.Color.Value) {
			errs.Add("color", ErrInvalidColor)
		}
		label.Color = req.Color.Value
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}

	if err := s.repo.SaveLabel(ctx, label); err != nil {
		return nil, wrap(err, "update label")
	}
	return label, nil
}

// DeleteLabel deletes a label and detaches it from every task
func (s *service) DeleteLabel(ctx context.Context, userID types.UserID, id int) error {
	if err := s.repo.DeleteLabel(ctx, userID, id); err != nil {
		return wrap(err, "delete label")
	}
	return nil
}

// wrap maps repository error kinds onto the label sentinels
func wrap(err error, action string) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return ErrLabelNotFound
	case errors.Is(err, models.ErrConflict):
		return ErrDuplicateName
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if utf8.RuneCountInString(name) > models.MaxLabelNameLength {
		return "", ErrNameTooLong
	}
	return name, nil
}
