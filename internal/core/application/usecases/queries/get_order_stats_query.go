package queries

import (
	"errors"
	"fmt"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var (
	ErrGetOrderStatsQueryIsNotConstructed = errors.New(
		"GetOrderStatsQuery must be created via NewGetOrderStatsQuery constructor",
	)
)

// StatsPeriod names the reporting window of a stats request.
type StatsPeriod string

const (
	PeriodToday StatsPeriod = "today"
	PeriodWeek  StatsPeriod = "week"
	PeriodMonth StatsPeriod = "month"
)

// Validate rejects unsupported period names.
func (p StatsPeriod) Validate() error {
	switch p {
	case PeriodToday, PeriodWeek, PeriodMonth:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("period",
			fmt.Errorf("%q is not a supported stats period", string(p)))
	}
}

// GetOrderStatsQuery aggregates a restaurant's order activity over a
// reporting window: counts per status, completed revenue, and how long the
// current pending queue has been waiting.
type GetOrderStatsQuery struct { //nolint:recvcheck //using for validation
	ownerID      kernel.UUID
	restaurantID kernel.UUID
	period       StatsPeriod

	guard guard.ConstructorGuard
}

// NewGetOrderStatsQuery creates a validated stats request.
func NewGetOrderStatsQuery(
	ownerID, restaurantID kernel.UUID,
	period StatsPeriod,
) (GetOrderStatsQuery, error) {
	q := GetOrderStatsQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		q.setOwnerID(ownerID),
		q.setRestaurantID(restaurantID),
		q.setPeriod(period),
	); err != nil {
		return GetOrderStatsQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatsQueryIsNotConstructed)
}

// OwnerID returns the acting owner's identifier.
func (q GetOrderStatsQuery) OwnerID() kernel.UUID {
	return q.ownerID
}

// RestaurantID returns the restaurant the stats cover.
func (q GetOrderStatsQuery) RestaurantID() kernel.UUID {
	return q.restaurantID
}

// Period returns the reporting window.
func (q GetOrderStatsQuery) Period() StatsPeriod {
	return q.period
}

func (q *GetOrderStatsQuery) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	q.ownerID = ownerID
	return nil
}

func (q *GetOrderStatsQuery) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}
	q.restaurantID = restaurantID
	return nil
}

func (q *GetOrderStatsQuery) setPeriod(period StatsPeriod) error {
	if err := period.Validate(); err != nil {
		return err
	}
	q.period = period
	return nil
}
