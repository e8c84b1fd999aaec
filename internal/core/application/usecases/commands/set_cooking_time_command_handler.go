package commands

import (
	"context"
	"fmt"
	"time"

	"orderdesk/internal/core/application/access"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
)

// cookingTimeWindow is the set of statuses during which the estimate may
// still change. The guarded persistence re-checks it so a concurrent
// transition past PREPARING cannot let a late write through.
func cookingTimeWindow() []order.Status {
	return []order.Status{order.New, order.Confirmed, order.Preparing}
}

// SetCookingTimeCommandHandler orchestrates a cooking-time update.
type SetCookingTimeCommandHandler struct {
	uowFactory OrderUoWFactory
	guard      access.Guard
	effects    SideEffects
}

// NewSetCookingTimeCommandHandler creates a handler for cooking-time updates.
func NewSetCookingTimeCommandHandler(
	uowFactory OrderUoWFactory,
	guard access.Guard,
	effects SideEffects,
) SetCookingTimeCommandHandler {
	return SetCookingTimeCommandHandler{
		uowFactory: uowFactory,
		guard:      guard,
		effects:    effects,
	}
}

// Handle processes the cooking-time update and returns the refreshed order.
func (h *SetCookingTimeCommandHandler) Handle(
	ctx context.Context, cmd SetCookingTimeCommand,
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

	if err = o.SetCookingTime(cmd.Minutes()); err != nil {
		return nil, err
	}

	if err = repo.UpdateCookingTime(ctx, o, cookingTimeWindow()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	now := time.Now()
	h.effects.recordAudit(ctx, order.NewCookingTimeEvent(
		o.ID(), o.Status(), cmd.OwnerID(), cmd.Minutes(), cmd.Reason(), now,
	))

	n := ports.Notification{
		OrderID:     o.ID(),
		OrderNumber: o.OrderNumber(),
		Event:       "order.cooking_time_set",
		Status:      o.Status().String(),
		Message:     fmt.Sprintf("estimated cooking time is now %d minutes", cmd.Minutes()),
	}
	h.effects.notifyOwner(ctx, cmd.OwnerID(), o.RestaurantID(), n)
	if cmd.NotifyCustomer() {
		h.effects.notifyCustomer(ctx, o.CustomerID(), n)
	}

	return o, nil
}
