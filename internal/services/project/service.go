package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/thenoetrevino/gtd/internal/models"
	"github.com/thenoetrevino/gtd/internal/types"
)

// Service defines all project-related business operations
type Service interface {
	// Read operations
	ListProjects(ctx context.Context, userID types.UserID) ([]*models.ProjectSummary, error)
	GetProject(ctx context.Context, userID types.UserID, id int) (*models.ProjectSummary, error)

	// Write operations
	CreateProject(ctx context.Context, req CreateProjectRequest) (*models.ProjectSummary, error)
	UpdateProject(ctx context.Context, req UpdateProjectRequest) (*models.ProjectSummary, error)
	DeleteProject(ctx context.Context, userID types.UserID, id int) error
}

// CreateProjectRequest encapsulates data for creating a project
type CreateProjectRequest struct {
	UserID      types.UserID
	Name        string
	Description *string
	DueDate     string // Optional: RFC 3339 or YYYY-MM-DD
	Status      string // Optional: empty means Active
}

// UpdateProjectRequest encapsulates data for updating a project.
// Description and DueDate accept null; Name and Status do not.
type UpdateProjectRequest struct {
	UserID      types.UserID
	ID          int
	Name        types.Optional[string]
	Description types.Optional[string]
	DueDate     types.Optional[string]
	Status      types.Optional[string]
}

// repository defines the data access methods needed by the project service
// This interface is private to the service layer
type repository interface {
	CreateProject(ctx context.Context, project *models.Project) error
	GetProject(ctx context.Context, userID types.UserID, id int) (*models.Project, error)
	ListProjects(ctx context.Context, userID types.UserID) ([]*models.Project, error)
	SaveProject(ctx context.Context, project *models.Project) error
	DeleteProject(ctx context.Context, userID types.UserID, id int) error
	NextProjectSortOrder(ctx context.Context, userID types.UserID) (int, error)
	CountOpenTasksByProject(ctx context.Context, userID types.UserID) (map[int]int, error)
}

// service implements Service interface with private repository
type service struct {
	repo repository
}

// NewService creates a new project service with private repository
func NewService(repo repository) Service {
	return &service{repo: repo}
}

// ListProjects returns every project of the owner with its open task count
func (s *service) ListProjects(ctx context.Context, userID types.UserID) ([]*models.ProjectSummary, error) {
	projects, err := s.repo.ListProjects(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	counts, err := s.repo.CountOpenTasksByProject(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count project tasks: %w", err)
	}

	summaries := make([]*models.ProjectSummary, len(projects))
	for i, p := range projects {
		summaries[i] = &models.ProjectSummary{Project: *p, OpenTaskCount: counts[p.ID]}
	}
	return summaries, nil
}

// GetProject retrieves a project by ID
func (s *service) GetProject(ctx context.Context, userID types.UserID, id int) (*models.ProjectSummary, error) {
	project, err := s.repo.GetProject(ctx, userID, id)
	if err != nil {
		return nil, s.wrap(err, "get project")
	}
	return s.summarize(ctx, project)
}

// CreateProject creates a new project at the end of the owner's list
func (s *service) CreateProject(ctx context.Context, req CreateProjectRequest) (*models.ProjectSummary, error) {
	project, err := validateCreateProject(req)
	if err != nil {
		return nil, err
	}

	sortOrder, err := s.repo.NextProjectSortOrder(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute sort order: %w", err)
	}
	project.SortOrder = sortOrder

	if err := s.repo.CreateProject(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	slog.Debug("project created", "project_id", project.ID, "user_id", req.UserID)
	return &models.ProjectSummary{Project: *project}, nil
}

// UpdateProject applies the fields present in req
func (s *service) UpdateProject(ctx context.Context, req UpdateProjectRequest) (*models.ProjectSummary, error) {
	var errs models.ValidationErrors

	project, err := s.repo.GetProject(ctx, req.UserID, req.ID)
	if err != nil {
		return nil, s.wrap(err, "get project")
	}

	if req.Name.Set {
		if req.Name.Value == nil {
			errs.Add("name", ErrNullNotAllowed)
		} else if name, err := validateName(*req.Name.Value); err != nil {
			errs.Add("name", err)
		} else {
			project.Name = name
		}
	}

	if req.Description.Set {
		if req.Description.Value != nil && utf8.RuneCountInString(*req.Description.Value) > models.MaxDescriptionLength {
			errs.Add("description", ErrDescriptionTooLong)
		}
		project.Description = req.Description.Value
	}

	if req.DueDate.Set {
		project.DueDate = nil
		if req.DueDate.Value != nil {
			due, err := models.ParseDueDate(*req.DueDate.Value)
			if err != nil {
				errs.Add("dueDate", err)
			}
			project.DueDate = &due
		}
	}

	if req.Status.Set {
		if req.Status.Value == nil {
			errs.Add("status", ErrNullNotAllowed)
		} else if status, err := models.ParseProjectStatus(*req.Status.Value); err != nil {
			errs.Add("status", err)
		} else {
			project.Status = status
		}
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}

	if err := s.repo.SaveProject(ctx, project); err != nil {
		return nil, s.wrap(err, "update project")
	}
	return s.summarize(ctx, project)
}

// DeleteProject removes a project; its tasks stay behind without a project
func (s *service) DeleteProject(ctx context.Context, userID types.UserID, id int) error {
	if err := s.repo.DeleteProject(ctx, userID, id); err != nil {
		return s.wrap(err, "delete project")
	}
	slog.Debug("project deleted", "project_id", id, "user_id", userID)
	return nil
}

func (s *service) summarize(ctx context.Context, project *models.Project) (*models.ProjectSummary, error) {
	counts, err := s.repo.CountOpenTasksByProject(ctx, project.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to count project tasks: %w", err)
	}
	return &models.ProjectSummary{Project: *project, OpenTaskCount: counts[project.ID]}, nil
}

func (s *service) wrap(err error, action string) error {
	if errors.Is(err, models.ErrNotFound) {
		return ErrProjectNotFound
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

func validateCreateProject(req CreateProjectRequest) (*models.Project, error) {
	var errs models.ValidationErrors
	project := &models.Project{
		UserID:      req.UserID,
		Description: req.Description,
		Status:      models.ProjectStatusActive,
	}

	name, err := validateName(req.Name)
	if err != nil {
		errs.Add("name", err)
	}
	project.Name = name

	if req.Description != nil && utf8.RuneCountInString(*req.Description) > models.MaxDescriptionLength {
		errs.Add("description", ErrDescriptionTooLong)
	}

	if req.DueDate != "" {
		due, err := models.ParseDueDate(req.DueDate)
		if err != nil {
			errs.Add("dueDate", err)
		}
		project.DueDate = &due
	}

	if req.Status != "" {
		if project.Status, err = models.ParseProjectStatus(req.Status); err != nil {
			errs.Add("status", err)
		}
	}

	return project, errs.Err()
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if utf8.RuneCountInString(name) > models.MaxProjectNameLength {
		return "", ErrNameTooLong
	}
	return name, nil
}
