package server

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/gtd/internal/cli"
	"github.com/thenoetrevino/gtd/internal/cli/styles"
)

// migrateResult is what migrate reports
type migrateResult struct {
	Path string `json:"path"`
}

// MigrateCmd returns the migrate command
func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		Long:  "Open the configured database, creating it if needed, and apply the schema. Safe to run repeatedly.",
		Args:  cobra.NoArgs,
		RunE:  runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, args []string) error {
	formatter := cli.FormatterFor(cmd)

	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return formatter.Fail("MIGRATION_ERROR", err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
	}()

	result := migrateResult{Path: cliInstance.Config.Database.Path}
	return formatter.Success(result, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%s %s\n", styles.DoneStyle.Render("Database ready:"), result.Path)
		return err
	})
}
