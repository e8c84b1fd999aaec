package commands

import (
	"context"
	"errors"
	"log/slog"

	"orderdesk/internal/core/application/access"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"
)

// Failure reason tokens reported per order in a bulk result.
const (
	FailureNotFound          = "NOT_FOUND"
	FailureForbidden         = "FORBIDDEN"
	FailureInvalidTransition = "INVALID_TRANSITION"
	FailureConflict          = "CONFLICT"
	FailureValidation        = "VALIDATION"
	FailureInternal          = "INTERNAL"
)

// FailedOrderAction reports why one order of a batch was not processed.
type FailedOrderAction struct {
	OrderID kernel.UUID
	Reason  string
	Message string
}

// BulkOrderActionResult partitions a batch into processed and failed
// orders. Transient: produced fresh per invocation, never persisted.
// len(Succeeded) + len(Failed) always equals the input batch size.
type BulkOrderActionResult struct {
	Succeeded []kernel.UUID
	Failed    []FailedOrderAction
}

// BulkOrderActionCommandHandler applies one action to every order of a batch
// by dispatching into the single-order handlers. Each order is its own unit
// of work: a failure is captured into the result and processing continues
// with the next id, so re-running a batch against already-processed orders
// lands those ids in Failed with INVALID_TRANSITION instead of crashing.
type BulkOrderActionCommandHandler struct {
	orders        ports.OrderRepository
	guard         access.Guard
	updateHandler UpdateOrderStatusCommandHandler
	rejectHandler RejectOrderCommandHandler
	logger        *slog.Logger
}

// NewBulkOrderActionCommandHandler creates the batch processor. The orders
// repository is only used for the per-item restaurant membership check; all
// mutations go through the single-order handlers.
func NewBulkOrderActionCommandHandler(
	orders ports.OrderRepository,
	guard access.Guard,
	updateHandler UpdateOrderStatusCommandHandler,
	rejectHandler RejectOrderCommandHandler,
	logger *slog.Logger,
) BulkOrderActionCommandHandler {
	return BulkOrderActionCommandHandler{
		orders:        orders,
		guard:         guard,
		updateHandler: updateHandler,
		rejectHandler: rejectHandler,
		logger:        logger.With("component", "bulk_order_action"),
	}
}

// Handle processes the batch sequentially and returns the partitioned result.
//
// The restaurant-level ownership check runs once up front and fails the whole
// call: a caller who does not control the target restaurant gets Forbidden
// before any order is touched. Per-order failures after that are isolated.
func (h *BulkOrderActionCommandHandler) Handle(
	ctx context.Context, cmd BulkOrderActionCommand,
) (BulkOrderActionResult, error) {
	if err := cmd.Validate(); err != nil {
		return BulkOrderActionResult{}, err
	}

	if err := h.guard.AssertOwnerControlsRestaurant(ctx, cmd.OwnerID(), cmd.RestaurantID()); err != nil {
		return BulkOrderActionResult{}, err
	}

	result := BulkOrderActionResult{
		Succeeded: make([]kernel.UUID, 0, len(cmd.OrderIDs())),
		Failed:    make([]FailedOrderAction, 0),
	}

	for _, orderID := range cmd.OrderIDs() {
		if err := h.applyOne(ctx, cmd, orderID); err != nil {
			result.Failed = append(result.Failed, FailedOrderAction{
				OrderID: orderID,
				Reason:  failureReason(err),
				Message: err.Error(),
			})
			h.logger.InfoContext(ctx, "bulk item failed",
				"order_id", orderID.String(),
				"action", string(cmd.Action()),
				"reason", failureReason(err),
			)
			continue
		}
		result.Succeeded = append(result.Succeeded, orderID)
	}

	return result, nil
}

// applyOne dispatches a single order to the matching single-order handler.
func (h *BulkOrderActionCommandHandler) applyOne(
	ctx context.Context, cmd BulkOrderActionCommand, orderID kernel.UUID,
) error {
	// An order from another restaurant is out of this batch's scope even
	// when the caller happens to own that restaurant too.
	o, err := h.orders.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if !o.RestaurantID().IsEqual(cmd.RestaurantID()) {
		return errs.NewForbiddenError(cmd.OwnerID().String(), "order "+orderID.String())
	}

	switch cmd.Action() {
	case ActionConfirm:
		return h.updateStatus(ctx, cmd, orderID, order.Confirmed, cmd.CookingTime())
	case ActionStartCooking:
		return h.updateStatus(ctx, cmd, orderID, order.Preparing, 0)
	case ActionReject:
		reject, err := NewRejectOrderCommand(
			cmd.OwnerID(), orderID, cmd.Reason(), "", "", true,
		)
		if err != nil {
			return err
		}
		_, err = h.rejectHandler.Handle(ctx, reject)
		return err
	default:
		// Unreachable: the command constructor validated the action.
		return errs.NewValueIsInvalidError("action")
	}
}

func (h *BulkOrderActionCommandHandler) updateStatus(
	ctx context.Context, cmd BulkOrderActionCommand, orderID kernel.UUID,
	newStatus order.Status, cookingTime int,
) error {
	update, err := NewUpdateOrderStatusCommand(
		cmd.OwnerID(), orderID, newStatus, cookingTime, "", true,
	)
	if err != nil {
		return err
	}

	_, err = h.updateHandler.Handle(ctx, update)
	return err
}

// failureReason maps an error to its bulk-result token using the error
// taxonomy's sentinels. Order matters: the more specific business kinds are
// checked before the generic validation kinds.
func failureReason(err error) string {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return FailureNotFound
	case errors.Is(err, errs.ErrForbidden):
		return FailureForbidden
	case errors.Is(err, errs.ErrInvalidTransition):
		return FailureInvalidTransition
	case errors.Is(err, errs.ErrConflict):
		return FailureConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return FailureValidation
	default:
		return FailureInternal
	}
}
