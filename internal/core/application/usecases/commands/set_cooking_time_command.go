package commands

import (
	"errors"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var (
	ErrSetCookingTimeCommandIsNotConstructed = errors.New(
		"SetCookingTimeCommand must be created via NewSetCookingTimeCommand",
	)
)

// SetCookingTimeCommand updates the estimated cooking time of an order.
// This mutates an attribute, not the status: no state-machine edge is
// crossed and no status-history entry is written, only a freeform audit
// event. Legal while the order is NEW, CONFIRMED, or PREPARING.
type SetCookingTimeCommand struct { //nolint:recvcheck //using for validation
	ownerID        kernel.UUID
	orderID        kernel.UUID
	minutes        int
	reason         string
	notifyCustomer bool

	guard guard.ConstructorGuard
}

// NewSetCookingTimeCommand creates a validated cooking-time update request.
func NewSetCookingTimeCommand(
	ownerID, orderID kernel.UUID,
	minutes int,
	reason string,
	notifyCustomer bool,
) (SetCookingTimeCommand, error) {
	cmd := SetCookingTimeCommand{
		reason:         reason,
		notifyCustomer: notifyCustomer,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOwnerID(ownerID),
		cmd.setOrderID(orderID),
		cmd.setMinutes(minutes),
	); err != nil {
		return SetCookingTimeCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetCookingTimeCommand) Validate() error {
	return c.guard.Validate(ErrSetCookingTimeCommandIsNotConstructed)
}

// OwnerID returns the acting owner's identifier.
func (c SetCookingTimeCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

// OrderID returns the target order's identifier.
func (c SetCookingTimeCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Minutes returns the requested cooking time in minutes.
func (c SetCookingTimeCommand) Minutes() int {
	return c.minutes
}

// Reason returns the optional free-text reason for the change.
func (c SetCookingTimeCommand) Reason() string {
	return c.reason
}

// NotifyCustomer reports whether the customer should be notified.
func (c SetCookingTimeCommand) NotifyCustomer() bool {
	return c.notifyCustomer
}

func (c *SetCookingTimeCommand) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	c.ownerID = ownerID
	return nil
}

func (c *SetCookingTimeCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *SetCookingTimeCommand) setMinutes(minutes int) error {
	if minutes < order.MinCookingTime || minutes > order.MaxCookingTime {
		return errs.NewValueIsOutOfRangeError("cookingTime", minutes, order.MinCookingTime, order.MaxCookingTime)
	}
	c.minutes = minutes
	return nil
}
