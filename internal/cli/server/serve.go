package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/gtd/internal/api"
	"github.com/thenoetrevino/gtd/internal/app"
	"github.com/thenoetrevino/gtd/internal/cli"
	"github.com/thenoetrevino/gtd/internal/config"
	"github.com/thenoetrevino/gtd/internal/database"
	"github.com/thenoetrevino/gtd/internal/maintenance"
	authservice "github.com/thenoetrevino/gtd/internal/services/auth"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the JSON API until interrupted.

The signing secret must be at least 32 bytes and is usually provided through
the environment:

  GTD_AUTH_JWT_SECRET=$(openssl rand -hex 32) gtd serve
`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := cli.ConfigFromContext(cmd.Context())
	if err != nil {
		return err
	}
	if err := cfg.ValidateServe(); err != nil {
		return &cli.ExitError{Code: cli.ExitValidation, Err: err}
	}

	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return Run(ctx, cfg, slog.Default(), nil)
}

// Run serves the API on cfg.Server.Addr until ctx is cancelled, then shuts
// down within cfg.Server.ShutdownTimeout. ready, when set, receives the bound
// address once the listener is open.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger, ready func(addr string)) error {
	db, err := database.InitDB(ctx, cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	application, err := app.New(db, authservice.Config{
		Secret:   []byte(cfg.Auth.JWTSecret),
		Issuer:   cfg.Auth.Issuer,
		TokenTTL: cfg.Auth.TokenTTL,
	}, app.WithLogger(logger))
	if err != nil {
		_ = database.Close(db)
		return err
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	scheduler, err := maintenance.NewScheduler(db, cfg.Maintenance, logger)
	if err != nil {
		return &cli.ExitError{Code: cli.ExitValidation, Err: err}
	}
	scheduler.Start()
	defer scheduler.Stop()

	httpServer := &http.Server{
		Handler:           api.NewServer(application).Handler(),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Server.Addr, err)
	}

	logger.Info("gtd server starting",
		"addr", ln.Addr().String(),
		"database", cfg.Database.Path,
		"pid", os.Getpid(),
	)
	if ready != nil {
		ready(ln.Addr().String())
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("gtd server shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
