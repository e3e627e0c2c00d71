// Package jobs provides scheduled background tasks for the fulfillment service.
//
// Jobs are cron-based (github.com/robfig/cron/v3) and are managed through
// JobManager:
//
//	jobManager := jobs.NewJobManager(fulfillmentClockJob, logger)
//	if err := jobManager.StartAll(); err != nil {
//		logger.WithError(err).Fatal("failed to start jobs")
//	}
//	defer jobManager.StopAll()
//
// # Fulfillment clock
//
// FulfillmentClockJob runs the auto-deliver sweep on SWEEP_SCHEDULE (default
// "@every 1m"). Overlapping ticks are skipped, and stopping the job cancels the
// sweep in flight.
package jobs
