package commands

import (
	"context"
	"time"

	"orderdesk/internal/core/application/access"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
)

// UpdateOrderStatusCommandHandler orchestrates a single status transition:
// ownership check, state-machine validation, compare-and-swap persistence,
// then audit and notifications after the commit.
//
// The CAS write is what makes concurrent owner actions safe: two callers can
// both read NEW and request NEW -> CONFIRMED, but only the first write finds
// the stored status still NEW; the loser gets ConflictError and must re-read.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	guard      access.Guard
	effects    SideEffects
}

// NewUpdateOrderStatusCommandHandler creates a handler for status transitions.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	guard access.Guard,
	effects SideEffects,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		guard:      guard,
		effects:    effects,
	}
}

// Handle processes the status change and returns the refreshed order.
//
// Failure modes surface directly: ObjectNotFoundError, ForbiddenError,
// InvalidTransitionError, ConflictError. Side-effect failures after the
// commit are logged and never returned.
func (h *UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context, cmd UpdateOrderStatusCommand,
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

	if cmd.CookingTime() > 0 {
		if err = o.SetCookingTime(cmd.CookingTime()); err != nil {
			return nil, err
		}
	}

	if err = o.ChangeStatus(cmd.NewStatus(), now); err != nil {
		return nil, err
	}

	if err = repo.UpdateStatusGuarded(ctx, o, expected); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.effects.recordAudit(ctx, order.NewStatusChange(
		o.ID(), expected, o.Status(), cmd.OwnerID(), cmd.Memo(), now,
	))

	n := ports.Notification{
		OrderID:     o.ID(),
		OrderNumber: o.OrderNumber(),
		Event:       "order.status_changed",
		Status:      o.Status().String(),
		Message:     cmd.Memo(),
	}
	h.effects.notifyOwner(ctx, cmd.OwnerID(), o.RestaurantID(), n)
	if cmd.NotifyCustomer() {
		h.effects.notifyCustomer(ctx, o.CustomerID(), n)
	}

	return o, nil
}
