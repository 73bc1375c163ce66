package cli

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/thenoetrevino/gtd/internal/config"
	"github.com/thenoetrevino/gtd/internal/database"
	taskservice "github.com/thenoetrevino/gtd/internal/services/task"
)

// CLI represents the CLI application context. Admin commands work on the
// local database directly and never need the token secret.
type CLI struct {
	Config      *config.Config
	DB          *gorm.DB
	Repo        *database.Repository
	TaskService taskservice.Service
}

// NewCLI opens the configured database and wires the services the admin
// commands use
func NewCLI(ctx context.Context, cfg *config.Config) (*CLI, error) {
	db, err := database.InitDB(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	repo := database.NewRepository(db)
	return &CLI{
		Config:      cfg,
		DB:          db,
		Repo:        repo,
		TaskService: taskservice.NewService(repo),
	}, nil
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	return database.Close(c.DB)
}
