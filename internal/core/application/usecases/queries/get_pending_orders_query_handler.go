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

// GetPendingOrdersQueryResponse is one row of the pending queue.
type GetPendingOrdersQueryResponse struct {
	ID          kernel.UUID
	OrderNumber string
	Status      order.Status
	ItemCount   int
	Total       int64
	CreatedAt   time.Time
	Waiting     time.Duration
	IsUrgent    bool
}

// GetPendingOrdersQueryHandler reads the pending queue from the database.
type GetPendingOrdersQueryHandler struct {
	db    *gorm.DB
	guard access.Guard
	now   func() time.Time
}

// NewGetPendingOrdersQueryHandler creates a handler for pending-queue
// requests.
func NewGetPendingOrdersQueryHandler(db *gorm.DB, guard access.Guard) GetPendingOrdersQueryHandler {
	return GetPendingOrdersQueryHandler{db: db, guard: guard, now: time.Now}
}

// Handle executes the queue query, oldest orders first.
func (h GetPendingOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetPendingOrdersQuery,
) ([]GetPendingOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := h.guard.AssertOwnerControlsRestaurant(ctx, query.OwnerID(), query.RestaurantID()); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			status,
			jsonb_array_length(items) AS item_count,
			pricing_total,
			created_at
		FROM orders
		WHERE restaurant_id = ? AND status IN ?
		ORDER BY created_at ASC, id
	`, query.RestaurantID().Bytes(), []int{int(order.New), int(order.Confirmed)}).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := h.now()
	pending := make([]GetPendingOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			id   uuid.UUID
			resp GetPendingOrdersQueryResponse
		)

		err = rows.Scan(
			&id,
			&resp.OrderNumber,
			&resp.Status,
			&resp.ItemCount,
			&resp.Total,
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
		resp.Waiting = now.Sub(resp.CreatedAt)
		resp.IsUrgent = resp.Waiting > query.UrgentAfter()
		pending = append(pending, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return pending, nil
}
