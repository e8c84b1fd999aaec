package queries

import (
	"context"
	"time"

	"orderdesk/internal/core/application/access"
	"orderdesk/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetOrderStatsQueryResponse summarizes a restaurant's order activity.
// Counts and revenue cover orders created inside the window; the wait
// figures describe every order still in flight (not yet delivered or
// rejected) as it stands now, whatever the window.
type GetOrderStatsQueryResponse struct {
	Period StatsPeriod
	Since  time.Time

	TotalOrders    int
	CountsByStatus map[order.Status]int

	// CompletedRevenue sums pricing_total of completed orders, in minor
	// currency units.
	CompletedRevenue int64

	AvgPendingWait time.Duration
	MaxPendingWait time.Duration
}

// GetOrderStatsQueryHandler aggregates order statistics from the database.
type GetOrderStatsQueryHandler struct {
	db    *gorm.DB
	guard access.Guard
	now   func() time.Time
}

// NewGetOrderStatsQueryHandler creates a handler for stats requests.
func NewGetOrderStatsQueryHandler(db *gorm.DB, guard access.Guard) GetOrderStatsQueryHandler {
	return GetOrderStatsQueryHandler{db: db, guard: guard, now: time.Now}
}

// windowStart converts the period to its cutoff time. "today" starts at
// local midnight; the rolling windows count back from now.
func (h GetOrderStatsQueryHandler) windowStart(period StatsPeriod) time.Time {
	now := h.now()
	switch period {
	case PeriodToday:
		year, month, day := now.Date()
		return time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	case PeriodWeek:
		return now.AddDate(0, 0, -7)
	default:
		return now.AddDate(0, -1, 0)
	}
}

// Handle executes the aggregation queries.
func (h GetOrderStatsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatsQuery,
) (GetOrderStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	if err := h.guard.AssertOwnerControlsRestaurant(ctx, query.OwnerID(), query.RestaurantID()); err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	since := h.windowStart(query.Period())
	resp := GetOrderStatsQueryResponse{
		Period:         query.Period(),
		Since:          since,
		CountsByStatus: make(map[order.Status]int),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			COUNT(*),
			COALESCE(SUM(pricing_total) FILTER (WHERE status = ?), 0)
		FROM orders
		WHERE restaurant_id = ? AND created_at >= ?
		GROUP BY status
	`, int(order.Completed), query.RestaurantID().Bytes(), since).Rows()
	if err != nil {
		return GetOrderStatsQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status  int
			count   int
			revenue int64
		)
		if err = rows.Scan(&status, &count, &revenue); err != nil {
			return GetOrderStatsQueryResponse{}, err
		}

		resp.CountsByStatus[order.Status(status)] = count
		resp.TotalOrders += count
		resp.CompletedRevenue += revenue
	}

	if err = rows.Err(); err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	var avgSeconds, maxSeconds float64
	err = h.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(AVG(EXTRACT(EPOCH FROM (NOW() - created_at))), 0),
			COALESCE(MAX(EXTRACT(EPOCH FROM (NOW() - created_at))), 0)
		FROM orders
		WHERE restaurant_id = ? AND status IN ?
	`, query.RestaurantID().Bytes(), []int{
		int(order.New), int(order.Confirmed), int(order.Preparing), int(order.Ready),
	}).
		Row().Scan(&avgSeconds, &maxSeconds)
	if err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	resp.AvgPendingWait = time.Duration(avgSeconds * float64(time.Second))
	resp.MaxPendingWait = time.Duration(maxSeconds * float64(time.Second))

	return resp, nil
}
