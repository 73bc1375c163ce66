package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/thenoetrevino/gtd/internal/config"
	"github.com/thenoetrevino/gtd/internal/database"
)

// SetupCLITest creates a file database under the test's temp dir and returns
// a config pointing at it, plus a repository for seeding data.
// Commands open their own connection, so an in-memory database won't do.
func SetupCLITest(t *testing.T) (*config.Config, *database.Repository) {
	t.Helper()

	cfg := config.Default()
	cfg.Database.Path = filepath.Join(t.TempDir(), "gtd.db")

	db, err := database.InitDB(context.Background(), cfg.Database.Path)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := database.Close(db); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	})

	return cfg, database.NewRepository(db)
}
