package jobs

import (
	"context"
	"log/slog"

	"resto/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DriverReconciliationJob manages the scheduled sweep that frees drivers
// whose assignment link went stale. Runs every thirty seconds; the sweep is
// housekeeping, not a hot path.
type DriverReconciliationJob struct {
	handler commands.ReconcileDriversCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDriverReconciliationJob creates a new job for reconciling driver
// assignments.
func NewDriverReconciliationJob(
	handler commands.ReconcileDriversCommandHandler,
	logger *slog.Logger,
) *DriverReconciliationJob {
	return &DriverReconciliationJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "driver_reconciliation_job"),
	}
}

// Start begins the driver reconciliation job to run every thirty seconds.
func (j *DriverReconciliationJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewReconcileDriversCommand()
		if err != nil {
			j.logger.ErrorContext(ctx, "Driver reconciliation command rejected", "error", err)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Driver reconciliation job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Driver reconciliation job started (running every thirty seconds)")
	return nil
}

// Stop stops the driver reconciliation job.
func (j *DriverReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Driver reconciliation job stopped")
}
