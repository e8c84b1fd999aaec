package commands

import (
	"errors"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var (
	ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
		"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand",
	)
)

// UpdateOrderStatusCommand requests one status transition for one order.
// The optional cooking time lets an owner accept an order and announce the
// kitchen estimate in a single call.
//
// Example:
//
//	cmd, err := NewUpdateOrderStatusCommand(ownerID, orderID, order.Confirmed, 25, "", true)
//	if err != nil {
//	    return err
//	}
//	updated, err := handler.Handle(ctx, cmd)
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	ownerID        kernel.UUID
	orderID        kernel.UUID
	newStatus      order.Status
	cookingTime    int
	memo           string
	notifyCustomer bool

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a validated status-change request.
// cookingTime of 0 means "leave the estimate untouched"; memo is an optional
// free-text note recorded in the audit trail.
func NewUpdateOrderStatusCommand(
	ownerID, orderID kernel.UUID,
	newStatus order.Status,
	cookingTime int,
	memo string,
	notifyCustomer bool,
) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		memo:           memo,
		notifyCustomer: notifyCustomer,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOwnerID(ownerID),
		cmd.setOrderID(orderID),
		cmd.setNewStatus(newStatus),
		cmd.setCookingTime(cookingTime),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OwnerID returns the acting owner's identifier.
func (c UpdateOrderStatusCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

// OrderID returns the target order's identifier.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// NewStatus returns the requested status.
func (c UpdateOrderStatusCommand) NewStatus() order.Status {
	return c.newStatus
}

// CookingTime returns the requested cooking estimate in minutes; 0 means unset.
func (c UpdateOrderStatusCommand) CookingTime() int {
	return c.cookingTime
}

// Memo returns the optional audit note.
func (c UpdateOrderStatusCommand) Memo() string {
	return c.memo
}

// NotifyCustomer reports whether the customer should be notified.
// The owner is always notified.
func (c UpdateOrderStatusCommand) NotifyCustomer() bool {
	return c.notifyCustomer
}

func (c *UpdateOrderStatusCommand) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	c.ownerID = ownerID
	return nil
}

func (c *UpdateOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderStatusCommand) setNewStatus(newStatus order.Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}
	c.newStatus = newStatus
	return nil
}

func (c *UpdateOrderStatusCommand) setCookingTime(cookingTime int) error {
	if cookingTime < 0 {
		return errs.NewValueIsOutOfRangeError("cookingTime", cookingTime, 0, order.MaxCookingTime)
	}
	c.cookingTime = cookingTime
	return nil
}
