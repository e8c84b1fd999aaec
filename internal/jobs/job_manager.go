package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	urgentOrderReminderJob *UrgentOrderReminderJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	urgentOrders queries.GetUrgentOrdersQueryHandler,
	relay ports.NotificationRelay,
	urgentAfter time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		urgentOrderReminderJob: NewUrgentOrderReminderJob(urgentOrders, relay, urgentAfter, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.urgentOrderReminderJob.Start(); err != nil {
		return fmt.Errorf("failed to start urgent order reminder job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.urgentOrderReminderJob.Stop()
}
