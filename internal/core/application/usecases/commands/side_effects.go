package commands

import (
	"context"
	"log/slog"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"
)

// DefaultSideEffectTimeout bounds each audit/notification/refund call when
// the configuration does not supply one.
const DefaultSideEffectTimeout = 5 * time.Second

// SideEffects bundles the best-effort collaborators shared by the mutating
// handlers: the audit trail and the notification relay. All calls happen
// after the status change has been committed, are bounded by the configured
// timeout, and are detached from the request's cancellation — a committed
// transition is never rolled back or blocked by a failing side effect.
type SideEffects struct {
	audit   ports.AuditTrail
	relay   ports.NotificationRelay
	logger  *slog.Logger
	timeout time.Duration
}

// NewSideEffects creates the shared side-effect dispatcher. A non-positive
// timeout falls back to DefaultSideEffectTimeout.
func NewSideEffects(
	audit ports.AuditTrail,
	relay ports.NotificationRelay,
	logger *slog.Logger,
	timeout time.Duration,
) SideEffects {
	if timeout <= 0 {
		timeout = DefaultSideEffectTimeout
	}
	return SideEffects{
		audit:   audit,
		relay:   relay,
		logger:  logger.With("component", "order_side_effects"),
		timeout: timeout,
	}
}

// boundedContext detaches from the caller's cancellation and applies the
// side-effect timeout. The transition is already committed at this point, so
// an upstream cancellation must not abort the audit or notification.
func (s SideEffects) boundedContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
}

// recordAudit appends the entry to the audit trail. A failure is reported to
// operators through the log and deliberately swallowed: the state change is
// the source of truth, the audit record is derived.
func (s SideEffects) recordAudit(ctx context.Context, entry order.StatusChange) {
	actx, cancel := s.boundedContext(ctx)
	defer cancel()

	if err := s.audit.Append(actx, entry); err != nil {
		s.logger.ErrorContext(ctx, "audit trail append failed",
			"order_id", entry.OrderID.String(),
			"from", entry.FromStatus.String(),
			"to", entry.ToStatus.String(),
			"error", errs.NewExternalServiceError("audit", err),
		)
	}
}

// notifyOwner dispatches a notification to the restaurant owner.
func (s SideEffects) notifyOwner(ctx context.Context, ownerID, restaurantID kernel.UUID, n ports.Notification) {
	nctx, cancel := s.boundedContext(ctx)
	defer cancel()

	if err := s.relay.NotifyOwner(nctx, ownerID, restaurantID, n); err != nil {
		s.logger.WarnContext(ctx, "owner notification failed",
			"order_id", n.OrderID.String(),
			"owner_id", ownerID.String(),
			"error", errs.NewExternalServiceError("notifications", err),
		)
	}
}

// notifyCustomer dispatches a notification to the customer.
func (s SideEffects) notifyCustomer(ctx context.Context, customerID kernel.UUID, n ports.Notification) {
	nctx, cancel := s.boundedContext(ctx)
	defer cancel()

	if err := s.relay.NotifyCustomer(nctx, customerID, n); err != nil {
		s.logger.WarnContext(ctx, "customer notification failed",
			"order_id", n.OrderID.String(),
			"customer_id", customerID.String(),
			"error", errs.NewExternalServiceError("notifications", err),
		)
	}
}
