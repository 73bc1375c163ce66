package app

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/thenoetrevino/gtd/internal/database"
	authservice "github.com/thenoetrevino/gtd/internal/services/auth"
	labelservice "github.com/thenoetrevino/gtd/internal/services/label"
	projectservice "github.com/thenoetrevino/gtd/internal/services/project"
	taskservice "github.com/thenoetrevino/gtd/internal/services/task"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	// Repository layer (direct database access)
	db   *gorm.DB
	repo *database.Repository

	Logger *slog.Logger

	// Service layer (business logic)
	AuthService    authservice.Service
	TaskService    taskservice.Service
	ProjectService projectservice.Service
	LabelService   labelservice.Service
}

// New creates a new App with all services initialized.
// This is the single entry point for creating the application container.
func New(db *gorm.DB, authCfg authservice.Config, opts ...Option) (*App, error) {
	cfg := &appConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	repo := database.NewRepository(db)

	authSvc, err := authservice.NewService(repo, authCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	return &App{
		db:             db,
		repo:           repo,
		Logger:         cfg.logger,
		AuthService:    authSvc,
		TaskService:    taskservice.NewService(repo),
		ProjectService: projectservice.NewService(repo),
		LabelService:   labelservice.NewService(repo),
	}, nil
}

// Repo returns the underlying repository for commands that work below the
// service layer, such as the admin CLI
func (a *App) Repo() *database.Repository {
	return a.repo
}

// Ping reports whether the database still answers
func (a *App) Ping(ctx context.Context) error {
	return database.Ping(ctx, a.db)
}

// Close releases the database connection pool
func (a *App) Close() error {
	return database.Close(a.db)
}
