package jobs

import (
	"context"
	"log/slog"
	"time"

	"resto/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// RiderDispatchJob manages the scheduled rider search for delivery orders.
// Runs every two seconds to match marked orders with free riders and to
// return stale searches to the manual queue.
type RiderDispatchJob struct {
	handler    commands.DispatchRidersCommandHandler
	staleAfter time.Duration
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewRiderDispatchJob creates a new job for dispatching riders.
// Uses DispatchRidersCommandHandler with the configured stale-marker cutoff.
func NewRiderDispatchJob(
	handler commands.DispatchRidersCommandHandler,
	staleAfter time.Duration,
	logger *slog.Logger,
) *RiderDispatchJob {
	return &RiderDispatchJob{
		handler:    handler,
		staleAfter: staleAfter,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "rider_dispatch_job"),
	}
}

// Start begins the rider dispatch job to run every two seconds.
func (j *RiderDispatchJob) Start() error {
	_, err := j.cron.AddFunc("*/2 * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewDispatchRidersCommand(j.staleAfter)
		if err != nil {
			j.logger.ErrorContext(ctx, "Rider dispatch command rejected", "error", err)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Rider dispatch job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Rider dispatch job started (running every two seconds)")
	return nil
}

// Stop stops the rider dispatch job.
func (j *RiderDispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Rider dispatch job stopped")
}
