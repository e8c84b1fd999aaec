package commands

import (
	"context"
	"log/slog"
	"time"

	"orderdesk/internal/core/application/access"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"
)

// RejectOrderCommandHandler orchestrates the rejection workflow: guarded
// transition to REJECTED, conditional refund, audit, notifications.
//
// The refund is strictly best-effort relative to the rejection: once the
// CAS write to REJECTED has committed, a refund failure is logged and
// handed to operators — it never undoes the rejection and never reaches
// the caller. Refund retry is the payment collaborator's concern.
type RejectOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	guard      access.Guard
	payments   ports.PaymentGateway
	effects    SideEffects
	logger     *slog.Logger
}

// NewRejectOrderCommandHandler creates a handler for order rejections.
func NewRejectOrderCommandHandler(
	uowFactory OrderUoWFactory,
	guard access.Guard,
	payments ports.PaymentGateway,
	effects SideEffects,
	logger *slog.Logger,
) RejectOrderCommandHandler {
	return RejectOrderCommandHandler{
		uowFactory: uowFactory,
		guard:      guard,
		payments:   payments,
		effects:    effects,
		logger:     logger.With("component", "reject_order"),
	}
}

// Handle processes the rejection and returns the refreshed order.
func (h *RejectOrderCommandHandler) Handle(
	ctx context.Context, cmd RejectOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = h.guard.AssertOwnerControlsOrder(ctx, cmd.OwnerID(), o); err != nil {
		return nil, err
	}

	expected := o.Status()
	now := time.Now()

	if err = o.Reject(cmd.Reason(), cmd.Detail(), now); err != nil {
		return nil, err
	}

	if err = repo.UpdateStatusGuarded(ctx, o, expected); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	// The order is rejected from here on, whatever the collaborators do.
	if cmd.AutoRefund() && o.PaymentStatus() == order.PaymentCompleted {
		h.refund(ctx, o, cmd.Reason())
	}

	h.effects.recordAudit(ctx, order.NewStatusChange(
		o.ID(), expected, o.Status(), cmd.OwnerID(), string(cmd.Reason()), now,
	))

	h.effects.notifyOwner(ctx, cmd.OwnerID(), o.RestaurantID(), ports.Notification{
		OrderID:     o.ID(),
		OrderNumber: o.OrderNumber(),
		Event:       "order.rejected",
		Status:      o.Status().String(),
		Message:     string(cmd.Reason()),
	})
	h.effects.notifyCustomer(ctx, o.CustomerID(), ports.Notification{
		OrderID:     o.ID(),
		OrderNumber: o.OrderNumber(),
		Event:       "order.rejected",
		Status:      o.Status().String(),
		Message:     cmd.CustomerMessage(),
	})

	return o, nil
}

// refund cancels the captured payment for the order's total amount. Errors
// are logged as external-service failures and swallowed.
func (h *RejectOrderCommandHandler) refund(ctx context.Context, o *order.Order, reason order.RejectionReason) {
	rctx, cancel := h.effects.boundedContext(ctx)
	defer cancel()

	payment, err := h.payments.GetPaymentByOrderID(rctx, o.ID())
	if err != nil {
		h.logger.ErrorContext(ctx, "refund lookup failed; refund requires manual follow-up",
			"order_id", o.ID().String(),
			"error", errs.NewExternalServiceError("payments", err),
		)
		return
	}

	if err = h.payments.CancelPayment(rctx, payment.PaymentKey, string(reason), o.Pricing().Total); err != nil {
		h.logger.ErrorContext(ctx, "refund failed; refund requires manual follow-up",
			"order_id", o.ID().String(),
			"payment_key", payment.PaymentKey,
			"amount", o.Pricing().Total,
			"error", errs.NewExternalServiceError("payments", err),
		)
	}
}
