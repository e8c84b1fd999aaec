package queries

import (
	"context"
	"time"

	"orderdesk/internal/core/application/access"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersQueryResponse is one row of the owner's order list. A summary
// projection: the full aggregate is only loaded by the detail query.
type GetOrdersQueryResponse struct {
	ID                   kernel.UUID
	OrderNumber          string
	Status               order.Status
	PaymentStatus        order.PaymentStatus
	ItemCount            int
	Total                int64
	EstimatedCookingTime int
	CreatedAt            time.Time
}

// GetOrdersQueryHandler lists a restaurant's orders from the database.
type GetOrdersQueryHandler struct {
	db    *gorm.DB
	guard access.Guard
}

// NewGetOrdersQueryHandler creates a handler for owner order lists.
func NewGetOrdersQueryHandler(db *gorm.DB, guard access.Guard) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db, guard: guard}
}

// Handle executes the list query, newest orders first.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := h.guard.AssertOwnerControlsRestaurant(ctx, query.OwnerID(), query.RestaurantID()); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			order_number,
			status,
			payment_status,
			jsonb_array_length(items) AS item_count,
			pricing_total,
			estimated_cooking_time,
			created_at
		FROM orders
		WHERE restaurant_id = ?
	`
	args := []any{query.RestaurantID().Bytes()}

	if query.Status() != order.Unknown {
		sql += " AND status = ?"
		args = append(args, int(query.Status()))
	}

	sql += " ORDER BY created_at DESC, id LIMIT ? OFFSET ?"
	args = append(args, query.Limit(), query.Offset())

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			id   uuid.UUID
			resp GetOrdersQueryResponse
		)

		err = rows.Scan(
			&id,
			&resp.OrderNumber,
			&resp.Status,
			&resp.PaymentStatus,
			&resp.ItemCount,
			&resp.Total,
			&resp.EstimatedCookingTime,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
