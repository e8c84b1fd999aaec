package queries

import (
	"context"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUrgentOrdersQueryResponse is one overdue order together with the owner
// who needs the reminder, resolved through the restaurant join.
type GetUrgentOrdersQueryResponse struct {
	ID           kernel.UUID
	OrderNumber  string
	RestaurantID kernel.UUID
	OwnerID      kernel.UUID
	Status       order.Status
	CreatedAt    time.Time
}

// GetUrgentOrdersQueryHandler scans for overdue pending orders across all
// restaurants.
type GetUrgentOrdersQueryHandler struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGetUrgentOrdersQueryHandler creates a handler for reminder scans.
func NewGetUrgentOrdersQueryHandler(db *gorm.DB) GetUrgentOrdersQueryHandler {
	return GetUrgentOrdersQueryHandler{db: db, now: time.Now}
}

// Handle returns every NEW or CONFIRMED order older than the threshold,
// oldest first.
func (h GetUrgentOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUrgentOrdersQuery,
) ([]GetUrgentOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	cutoff := h.now().Add(-query.UrgentAfter())

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.order_number,
			o.restaurant_id,
			r.owner_id,
			o.status,
			o.created_at
		FROM orders o
		JOIN restaurants r ON r.id = o.restaurant_id
		WHERE o.status IN ? AND o.created_at < ?
		ORDER BY o.created_at ASC
	`, []int{int(order.New), int(order.Confirmed)}, cutoff).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	urgent := make([]GetUrgentOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			id           uuid.UUID
			restaurantID uuid.UUID
			ownerID      uuid.UUID
			resp         GetUrgentOrdersQueryResponse
		)

		err = rows.Scan(
			&id,
			&resp.OrderNumber,
			&restaurantID,
			&ownerID,
			&resp.Status,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.RestaurantID, err = kernel.UUIDFromBytes(restaurantID[:]); err != nil {
			return nil, err
		}
		if resp.OwnerID, err = kernel.UUIDFromBytes(ownerID[:]); err != nil {
			return nil, err
		}

		urgent = append(urgent, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return urgent, nil
}
