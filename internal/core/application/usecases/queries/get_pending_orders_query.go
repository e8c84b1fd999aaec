package queries

import (
	"errors"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var (
	ErrGetPendingOrdersQueryIsNotConstructed = errors.New(
		"GetPendingOrdersQuery must be created via NewGetPendingOrdersQuery constructor",
	)
)

// DefaultUrgentAfter is how long an order may sit without an owner decision
// before it is flagged urgent.
const DefaultUrgentAfter = 30 * time.Minute

// GetPendingOrdersQuery retrieves the orders still awaiting kitchen action
// for a restaurant: NEW and CONFIRMED, oldest first, so the owner works the
// queue top-down. Orders waiting past the urgency threshold are flagged.
type GetPendingOrdersQuery struct { //nolint:recvcheck //using for validation
	ownerID      kernel.UUID
	restaurantID kernel.UUID
	urgentAfter  time.Duration

	guard guard.ConstructorGuard
}

// NewGetPendingOrdersQuery creates a validated pending-queue request.
// urgentAfter of 0 falls back to DefaultUrgentAfter.
func NewGetPendingOrdersQuery(
	ownerID, restaurantID kernel.UUID,
	urgentAfter time.Duration,
) (GetPendingOrdersQuery, error) {
	q := GetPendingOrdersQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		q.setOwnerID(ownerID),
		q.setRestaurantID(restaurantID),
		q.setUrgentAfter(urgentAfter),
	); err != nil {
		return GetPendingOrdersQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPendingOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingOrdersQueryIsNotConstructed)
}

// OwnerID returns the acting owner's identifier.
func (q GetPendingOrdersQuery) OwnerID() kernel.UUID {
	return q.ownerID
}

// RestaurantID returns the restaurant whose queue is requested.
func (q GetPendingOrdersQuery) RestaurantID() kernel.UUID {
	return q.restaurantID
}

// UrgentAfter returns the urgency threshold.
func (q GetPendingOrdersQuery) UrgentAfter() time.Duration {
	return q.urgentAfter
}

func (q *GetPendingOrdersQuery) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	q.ownerID = ownerID
	return nil
}

func (q *GetPendingOrdersQuery) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}
	q.restaurantID = restaurantID
	return nil
}

func (q *GetPendingOrdersQuery) setUrgentAfter(urgentAfter time.Duration) error {
	if urgentAfter < 0 {
		return errs.NewValueIsOutOfRangeError("urgentAfter", urgentAfter, 0, "unbounded")
	}
	if urgentAfter == 0 {
		urgentAfter = DefaultUrgentAfter
	}
	q.urgentAfter = urgentAfter
	return nil
}
