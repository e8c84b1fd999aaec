package commands

import (
	"errors"
	"fmt"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var (
	ErrBulkOrderActionCommandIsNotConstructed = errors.New(
		"BulkOrderActionCommand must be created via NewBulkOrderActionCommand",
	)
)

// BulkAction names one of the supported batch operations.
type BulkAction string

const (
	ActionConfirm      BulkAction = "confirm"
	ActionStartCooking BulkAction = "start_cooking"
	ActionReject       BulkAction = "reject"
)

// Validate rejects unsupported action names before any order is touched.
func (a BulkAction) Validate() error {
	switch a {
	case ActionConfirm, ActionStartCooking, ActionReject:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("action",
			fmt.Errorf("%q is not a supported bulk action", string(a)))
	}
}

// BulkOrderActionCommand applies one action to a batch of orders of a single
// restaurant. Each order is processed independently; there is no cross-order
// atomicity.
//
// For the reject action the caller's reason is carried to every order; when
// no reason is supplied it defaults to OTHER.
type BulkOrderActionCommand struct { //nolint:recvcheck //using for validation
	ownerID      kernel.UUID
	restaurantID kernel.UUID
	orderIDs     []kernel.UUID
	action       BulkAction
	reason       order.RejectionReason
	cookingTime  int

	guard guard.ConstructorGuard
}

// NewBulkOrderActionCommand creates a validated bulk request. reason is only
// consulted for the reject action; cookingTime only for confirm (0 = unset).
func NewBulkOrderActionCommand(
	ownerID, restaurantID kernel.UUID,
	orderIDs []kernel.UUID,
	action BulkAction,
	reason order.RejectionReason,
	cookingTime int,
) (BulkOrderActionCommand, error) {
	cmd := BulkOrderActionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOwnerID(ownerID),
		cmd.setRestaurantID(restaurantID),
		cmd.setOrderIDs(orderIDs),
		cmd.setAction(action),
		cmd.setReason(action, reason),
		cmd.setCookingTime(cookingTime),
	); err != nil {
		return BulkOrderActionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BulkOrderActionCommand) Validate() error {
	return c.guard.Validate(ErrBulkOrderActionCommandIsNotConstructed)
}

// OwnerID returns the acting owner's identifier.
func (c BulkOrderActionCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

// RestaurantID returns the restaurant the batch belongs to.
func (c BulkOrderActionCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// OrderIDs returns a copy of the batch's order identifiers.
func (c BulkOrderActionCommand) OrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(c.orderIDs))
	copy(ids, c.orderIDs)
	return ids
}

// Action returns the requested batch operation.
func (c BulkOrderActionCommand) Action() BulkAction {
	return c.action
}

// Reason returns the rejection reason used by the reject action.
func (c BulkOrderActionCommand) Reason() order.RejectionReason {
	return c.reason
}

// CookingTime returns the cooking estimate used by the confirm action;
// 0 means unset.
func (c BulkOrderActionCommand) CookingTime() int {
	return c.cookingTime
}

func (c *BulkOrderActionCommand) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	c.ownerID = ownerID
	return nil
}

func (c *BulkOrderActionCommand) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}
	c.restaurantID = restaurantID
	return nil
}

func (c *BulkOrderActionCommand) setOrderIDs(orderIDs []kernel.UUID) error {
	if len(orderIDs) == 0 {
		return errs.NewValueIsRequiredError("orderIds")
	}
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	c.orderIDs = make([]kernel.UUID, len(orderIDs))
	copy(c.orderIDs, orderIDs)
	return nil
}

func (c *BulkOrderActionCommand) setAction(action BulkAction) error {
	if err := action.Validate(); err != nil {
		return err
	}
	c.action = action
	return nil
}

func (c *BulkOrderActionCommand) setReason(action BulkAction, reason order.RejectionReason) error {
	if action != ActionReject {
		return nil
	}
	if reason == "" {
		c.reason = order.ReasonOther
		return nil
	}
	if err := reason.Validate(); err != nil {
		return err
	}
	c.reason = reason
	return nil
}

func (c *BulkOrderActionCommand) setCookingTime(cookingTime int) error {
	if cookingTime < 0 {
		return errs.NewValueIsOutOfRangeError("cookingTime", cookingTime, 0, order.MaxCookingTime)
	}
	c.cookingTime = cookingTime
	return nil
}
