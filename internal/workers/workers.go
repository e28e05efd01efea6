// Package workers runs periodic background jobs.
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Job is a unit of work repeated every Interval.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Runner owns the goroutines of started jobs.
type Runner struct {
	wg sync.WaitGroup
}

func NewRunner() *Runner {
	return &Runner{}
}

// Start runs job once immediately and then on every tick until ctx is done.
// A failing run is logged and the schedule continues. Jobs with a
// non-positive interval are skipped.
func (r *Runner) Start(ctx context.Context, job Job) {
	if job.Interval <= 0 {
		log.Info().Str("job", job.Name).Msg("job disabled")
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ticker := time.NewTicker(job.Interval)
		defer ticker.Stop()

		log.Info().Str("job", job.Name).Dur("interval", job.Interval).Msg("job started")
		runOnce(ctx, job)
		for {
			select {
			case <-ctx.Done():
				log.Info().Str("job", job.Name).Msg("job stopped")
				return
			case <-ticker.C:
				runOnce(ctx, job)
			}
		}
	}()
}

// Wait blocks until every started job has returned.
func (r *Runner) Wait() {
	r.wg.Wait()
}

func runOnce(ctx context.Context, job Job) {
	start := time.Now()
	if err := job.Run(ctx); err != nil {
		log.Error().Err(err).Str("job", job.Name).Msg("job run failed")
		return
	}
	log.Debug().Str("job", job.Name).Dur("took", time.Since(start)).Msg("job run completed")
}
