// Package maintenance runs periodic SQLite housekeeping on cron schedules.
package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/thenoetrevino/gtd/internal/config"
	"github.com/thenoetrevino/gtd/internal/database"
)

// jobTimeout bounds a single maintenance run
const jobTimeout = time.Minute

// Scheduler wraps cron-based maintenance jobs
type Scheduler struct {
	cron   *cron.Cron
	db     *gorm.DB
	logger *slog.Logger
}

// NewScheduler registers the checkpoint and optimize jobs. Schedules use the
// standard five-field cron syntax or descriptors such as "@every 1h"; an
// empty schedule skips that job.
func NewScheduler(db *gorm.DB, cfg config.MaintenanceConfig, logger *slog.Logger) (*Scheduler, error) {
	cronLogger := slogAdapter{logger}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		db:     db,
		logger: logger,
	}

	jobs := []struct {
		name     string
		schedule string
		run      func(context.Context) error
	}{
		{"wal_checkpoint", cfg.CheckpointSchedule, s.Checkpoint},
		{"optimize", cfg.OptimizeSchedule, s.Optimize},
	}
	for _, job := range jobs {
		if job.schedule == "" {
			continue
		}
		if _, err := s.cron.AddFunc(job.schedule, s.wrap(job.name, job.run)); err != nil {
			return nil, fmt.Errorf("invalid %s schedule %q: %w", job.name, job.schedule, err)
		}
	}
	return s, nil
}

// Start runs the scheduler in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for a running job to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Jobs returns the number of registered jobs
func (s *Scheduler) Jobs() int {
	return len(s.cron.Entries())
}

// Checkpoint truncates the write-ahead log
func (s *Scheduler) Checkpoint(ctx context.Context) error {
	res, err := database.Checkpoint(ctx, s.db)
	if err != nil {
		return err
	}
	s.logger.Debug("wal checkpoint", "busy", res.Busy, "log_frames", res.Log, "checkpointed", res.Checkpointed)
	return nil
}

// Optimize refreshes the query planner statistics
func (s *Scheduler) Optimize(ctx context.Context) error {
	return database.Optimize(ctx, s.db)
}

func (s *Scheduler) wrap(name string, run func(context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		start := time.Now()
		if err := run(ctx); err != nil {
			s.logger.Error("maintenance job failed", "job", name, "error", err)
			return
		}
		s.logger.Info("maintenance job finished", "job", name, "duration", time.Since(start))
	}
}

// slogAdapter satisfies cron.Logger
type slogAdapter struct {
	logger *slog.Logger
}

func (a slogAdapter) Info(msg string, keysAndValues ...any) {
	a.logger.Debug("cron: "+msg, keysAndValues...)
}

func (a slogAdapter) Error(err error, msg string, keysAndValues ...any) {
	a.logger.Error("cron: "+msg, append([]any{"error", err}, keysAndValues...)...)
}
