package scheduler

import (
	"context"
	"time"

	"github.com/shelftrack/shelftrack-api/pkg/logger"
)

// Job is the unit of scheduled work. The notification use case's
// CheckOverdueNotifications satisfies it.
type Job func(ctx context.Context) error

// Scheduler runs a job on a fixed tick in its own goroutine, independent of
// request handling. Errors are logged, never fatal: the next tick runs anyway.
type Scheduler struct {
	interval time.Duration
	job      Job
	log      *logger.Logger
	done     chan struct{}
}

// New builds a scheduler over the job.
func New(interval time.Duration, job Job, log *logger.Logger) *Scheduler {
	return &Scheduler{
		interval: interval,
		job:      job,
		log:      log,
		done:     make(chan struct{}),
	}
}

// Start launches the ticker goroutine. It returns immediately; cancel ctx to
// stop, then Wait for the goroutine to drain.
func (s *Scheduler) Start(ctx context.Context) {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.log.Info().Dur("interval", s.interval).Msg("notification scheduler started")
		for {
			select {
			case <-ctx.Done():
				s.log.Info().Msg("notification scheduler stopped")
				return
			case <-ticker.C:
				if err := s.job(ctx); err != nil {
					s.log.Error().Err(err).Msg("scheduled job failed")
				}
			}
		}
	}()
}

// Wait blocks until the ticker goroutine has exited.
func (s *Scheduler) Wait() {
	<-s.done
}
