package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"resto/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	riderDispatchJob        *RiderDispatchJob
	driverReconciliationJob *DriverReconciliationJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	dispatchHandler commands.DispatchRidersCommandHandler,
	reconcileHandler commands.ReconcileDriversCommandHandler,
	dispatchStaleAfter time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		riderDispatchJob:        NewRiderDispatchJob(dispatchHandler, dispatchStaleAfter, logger),
		driverReconciliationJob: NewDriverReconciliationJob(reconcileHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.riderDispatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start rider dispatch job: %w", err)
	}

	if err := jm.driverReconciliationJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.riderDispatchJob.Stop()
		return fmt.Errorf("failed to start driver reconciliation job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.riderDispatchJob.Stop()
	jm.driverReconciliationJob.Stop()
}
