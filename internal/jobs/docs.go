// Package jobs provides scheduled background tasks for the fulfillment service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Jobs never change orders; they watch the pipeline and report to the log.
//
// # Available Jobs
//
// 1. StalledOrdersJob - Runs hourly and warns about orders stuck in printing or
// ready_to_ship for longer than a number of business days
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	stalled := jobs.NewStalledOrdersJob(finder, calendar, clock, jobs.DefaultStalledOrdersConfig(), logger)
//	jobManager := jobs.NewJobManager(stalled)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are six-field cron expressions with a leading seconds field,
// evaluated in the delivery calendar's time zone.
//
// # Error Handling
//
// - A failed run is logged; the next run happens on schedule
// - Failed job starts will stop any already running jobs
package jobs
