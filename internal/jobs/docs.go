// Package jobs provides scheduled background tasks for the restaurant
// operations backend.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle the periodic operations behind rider assignment.
//
// # Available Jobs
//
// 1. RiderDispatchJob - Runs every two seconds to assign free riders to marked delivery orders and to return stale searches to the manual queue
// 2. DriverReconciliationJob - Runs every thirty seconds to free drivers whose assignment link no longer matches the order
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(dispatchHandler, reconcileHandler, staleAfter, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Both handlers swallow expected per-item outcomes (no free rider, lost races) internally and only surface unexpected failures
// - Failed job starts will stop any already running jobs
package jobs
