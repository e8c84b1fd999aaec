// Package jobs provides scheduled background tasks for the order desk.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required by the service.
//
// # Available Jobs
//
// 1. UrgentOrderReminderJob - Runs every minute to remind owners about
// orders that have been waiting for confirmation or rejection too long.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(urgentOrdersHandler, relay, urgentAfter, logger)
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
// The reminder job uses the cron expression "0 * * * * *" and fires at the
// top of every minute. Each pending order is reminded once; the reminder
// slot is released when the order leaves the pending set.
//
// # Error Handling
//
// Scan failures are logged and retried on the next tick. A failed delivery
// to the broker keeps the order eligible for the next scan.
package jobs
