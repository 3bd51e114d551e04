// Package scheduler repeats report jobs on a fixed interval.
package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Job represents a scheduled task.
type Job struct {
	Name string
	Fn   func(ctx context.Context) error
}

// Scheduler runs jobs at a fixed interval.
type Scheduler struct {
	jobs   []Job
	logger *slog.Logger
}

// New creates a new scheduler.
func New() *Scheduler {
	return &Scheduler{logger: slog.Default()}
}

// Add registers a job with the scheduler.
func (s *Scheduler) Add(job Job) {
	s.jobs = append(s.jobs, job)
}

// RunOnce executes all registered jobs in order and stops at the first error.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	for _, job := range s.jobs {
		s.logger.Info("running job", "name", job.Name)
		start := time.Now()
		if err := job.Fn(ctx); err != nil {
			s.logger.Error("job failed", "name", job.Name, "error", err, "duration", time.Since(start))
			return err
		}
		s.logger.Info("job completed", "name", job.Name, "duration", time.Since(start))
	}
	return nil
}

// Start runs the jobs immediately and then every interval until ctx is
// cancelled. Job failures are logged and the loop keeps going.
func (s *Scheduler) Start(ctx context.Context, interval time.Duration) {
	s.logger.Info("scheduler started", "interval", interval, "jobs", len(s.jobs))

	_ = s.RunOnce(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return
		case <-ticker.C:
			_ = s.RunOnce(ctx)
		}
	}
}
