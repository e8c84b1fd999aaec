package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// UrgentOrderReminderJob scans for orders that have been waiting for a
// reaction longer than the configured threshold and nags the restaurant
// owner about them. Runs every minute.
type UrgentOrderReminderJob struct {
	urgentOrders queries.GetUrgentOrdersQueryHandler
	relay        ports.NotificationRelay
	urgentAfter  time.Duration
	cron         *cron.Cron
	logger       *slog.Logger

	mu       sync.Mutex
	reminded map[kernel.UUID]struct{}
}

// NewUrgentOrderReminderJob creates the reminder job. urgentAfter controls
// how long an order may sit in NEW or CONFIRMED before the owner is pinged.
func NewUrgentOrderReminderJob(
	urgentOrders queries.GetUrgentOrdersQueryHandler,
	relay ports.NotificationRelay,
	urgentAfter time.Duration,
	logger *slog.Logger,
) *UrgentOrderReminderJob {
	return &UrgentOrderReminderJob{
		urgentOrders: urgentOrders,
		relay:        relay,
		urgentAfter:  urgentAfter,
		cron:         cron.New(cron.WithSeconds()),
		logger:       logger.With("component", "urgent_order_reminder_job"),
		reminded:     make(map[kernel.UUID]struct{}),
	}
}

// Start begins the reminder job to run once per minute.
func (j *UrgentOrderReminderJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		if err := j.run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Urgent order reminder job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Urgent order reminder job started (running every minute)")
	return nil
}

// Stop stops the reminder job.
func (j *UrgentOrderReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Urgent order reminder job stopped")
}

func (j *UrgentOrderReminderJob) run(ctx context.Context) error {
	query, err := queries.NewGetUrgentOrdersQuery(j.urgentAfter)
	if err != nil {
		return err
	}

	overdue, err := j.urgentOrders.Handle(ctx, query)
	if err != nil {
		return err
	}

	current := make(map[kernel.UUID]struct{}, len(overdue))
	for _, o := range overdue {
		current[o.ID] = struct{}{}

		if j.alreadyReminded(o.ID) {
			continue
		}

		n := ports.Notification{
			OrderID:     o.ID,
			OrderNumber: o.OrderNumber,
			Event:       "ORDER_PENDING_REMINDER",
			Status:      o.Status.String(),
			Message: fmt.Sprintf(
				"Order %s has been waiting since %s, please confirm or reject it",
				o.OrderNumber, o.CreatedAt.Format(time.RFC3339),
			),
		}

		if err := j.relay.NotifyOwner(ctx, o.OwnerID, o.RestaurantID, n); err != nil {
			j.logger.ErrorContext(ctx, "Failed to deliver pending-order reminder",
				"order_id", o.ID, "error", err)
			continue
		}

		j.markReminded(o.ID)
	}

	// Drop entries for orders that are no longer pending; keeps the set
	// bounded by the current backlog.
	j.dropResolved(current)

	return nil
}

func (j *UrgentOrderReminderJob) alreadyReminded(id kernel.UUID) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	_, ok := j.reminded[id]
	return ok
}

func (j *UrgentOrderReminderJob) markReminded(id kernel.UUID) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.reminded[id] = struct{}{}
}

func (j *UrgentOrderReminderJob) dropResolved(current map[kernel.UUID]struct{}) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for id := range j.reminded {
		if _, ok := current[id]; !ok {
			delete(j.reminded, id)
		}
	}
}
