package queries

import (
	"context"

	"orderdesk/internal/core/application/access"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
)

// GetOrderDetailQueryResponse carries the full aggregate plus its audit
// trail, oldest entry first.
type GetOrderDetailQueryResponse struct {
	Order   *order.Order
	History []order.StatusChange
}

// GetOrderDetailQueryHandler loads one order with its status history. Unlike
// the list queries this goes through the repository: the detail view needs
// the full aggregate, not a projection.
type GetOrderDetailQueryHandler struct {
	orders ports.OrderRepository
	audit  ports.AuditTrail
	guard  access.Guard
}

// NewGetOrderDetailQueryHandler creates a handler for order detail requests.
func NewGetOrderDetailQueryHandler(
	orders ports.OrderRepository,
	audit ports.AuditTrail,
	guard access.Guard,
) GetOrderDetailQueryHandler {
	return GetOrderDetailQueryHandler{
		orders: orders,
		audit:  audit,
		guard:  guard,
	}
}

// Handle loads the order and its history after the ownership check.
func (h GetOrderDetailQueryHandler) Handle(
	ctx context.Context,
	query GetOrderDetailQuery,
) (GetOrderDetailQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderDetailQueryResponse{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderDetailQueryResponse{}, err
	}

	if err = h.guard.AssertOwnerControlsOrder(ctx, query.OwnerID(), o); err != nil {
		return GetOrderDetailQueryResponse{}, err
	}

	history, err := h.audit.ListByOrder(ctx, o.ID())
	if err != nil {
		return GetOrderDetailQueryResponse{}, err
	}

	return GetOrderDetailQueryResponse{
		Order:   o,
		History: history,
	}, nil
}
