package commands

import (
	"errors"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/guard"
)

var (
	ErrRejectOrderCommandIsNotConstructed = errors.New(
		"RejectOrderCommand must be created via NewRejectOrderCommand",
	)
)

// RejectOrderCommand requests that an order be declined. Rejection is legal
// only while the order is NEW or CONFIRMED. When autoRefund is set and the
// payment was captured, the handler also triggers a refund through the
// payment collaborator.
type RejectOrderCommand struct { //nolint:recvcheck //using for validation
	ownerID         kernel.UUID
	orderID         kernel.UUID
	reason          order.RejectionReason
	detail          string
	customerMessage string
	autoRefund      bool

	guard guard.ConstructorGuard
}

// NewRejectOrderCommand creates a validated rejection request.
// customerMessage overrides the reason's templated message when non-empty.
func NewRejectOrderCommand(
	ownerID, orderID kernel.UUID,
	reason order.RejectionReason,
	detail string,
	customerMessage string,
	autoRefund bool,
) (RejectOrderCommand, error) {
	cmd := RejectOrderCommand{
		detail:          detail,
		customerMessage: customerMessage,
		autoRefund:      autoRefund,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOwnerID(ownerID),
		cmd.setOrderID(orderID),
		cmd.setReason(reason),
	); err != nil {
		return RejectOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectOrderCommand) Validate() error {
	return c.guard.Validate(ErrRejectOrderCommandIsNotConstructed)
}

// OwnerID returns the acting owner's identifier.
func (c RejectOrderCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

// OrderID returns the target order's identifier.
func (c RejectOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns the classified rejection reason.
func (c RejectOrderCommand) Reason() order.RejectionReason {
	return c.reason
}

// Detail returns the optional owner-facing detail text.
func (c RejectOrderCommand) Detail() string {
	return c.detail
}

// CustomerMessage returns the message sent to the customer: the explicit
// override when present, otherwise the reason's template.
func (c RejectOrderCommand) CustomerMessage() string {
	if c.customerMessage != "" {
		return c.customerMessage
	}
	return c.reason.CustomerMessage()
}

// AutoRefund reports whether a captured payment should be refunded.
func (c RejectOrderCommand) AutoRefund() bool {
	return c.autoRefund
}

func (c *RejectOrderCommand) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	c.ownerID = ownerID
	return nil
}

func (c *RejectOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *RejectOrderCommand) setReason(reason order.RejectionReason) error {
	if err := reason.Validate(); err != nil {
		return err
	}
	c.reason = reason
	return nil
}
