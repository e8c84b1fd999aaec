// Package queries contains read-only operations over the order store. Query
// handlers bypass the aggregate and read projections straight from the
// database; they never mutate state.
package queries

import (
	"errors"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var (
	ErrGetOrdersQueryIsNotConstructed = errors.New(
		"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
	)
)

// Paging bounds for list queries.
const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// GetOrdersQuery lists a restaurant's orders for its owner, newest first,
// optionally filtered by status.
//
// Example:
//
//	query, err := NewGetOrdersQuery(ownerID, restaurantID, order.New, 20, 0)
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
type GetOrdersQuery struct { //nolint:recvcheck //using for validation
	ownerID      kernel.UUID
	restaurantID kernel.UUID
	status       order.Status
	limit        int
	offset       int

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a validated list request. status of Unknown
// means "all statuses"; limit of 0 falls back to DefaultPageSize.
func NewGetOrdersQuery(
	ownerID, restaurantID kernel.UUID,
	status order.Status,
	limit, offset int,
) (GetOrdersQuery, error) {
	q := GetOrdersQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		q.setOwnerID(ownerID),
		q.setRestaurantID(restaurantID),
		q.setStatus(status),
		q.setLimit(limit),
		q.setOffset(offset),
	); err != nil {
		return GetOrdersQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// OwnerID returns the acting owner's identifier.
func (q GetOrdersQuery) OwnerID() kernel.UUID {
	return q.ownerID
}

// RestaurantID returns the restaurant whose orders are listed.
func (q GetOrdersQuery) RestaurantID() kernel.UUID {
	return q.restaurantID
}

// Status returns the status filter; Unknown means no filter.
func (q GetOrdersQuery) Status() order.Status {
	return q.status
}

// Limit returns the page size.
func (q GetOrdersQuery) Limit() int {
	return q.limit
}

// Offset returns the number of rows to skip.
func (q GetOrdersQuery) Offset() int {
	return q.offset
}

func (q *GetOrdersQuery) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	q.ownerID = ownerID
	return nil
}

func (q *GetOrdersQuery) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}
	q.restaurantID = restaurantID
	return nil
}

func (q *GetOrdersQuery) setStatus(status order.Status) error {
	if status == order.Unknown {
		return nil
	}
	if err := status.Validate(); err != nil {
		return err
	}
	q.status = status
	return nil
}

func (q *GetOrdersQuery) setLimit(limit int) error {
	if limit < 0 || limit > MaxPageSize {
		return errs.NewValueIsOutOfRangeError("limit", limit, 0, MaxPageSize)
	}
	if limit == 0 {
		limit = DefaultPageSize
	}
	q.limit = limit
	return nil
}

func (q *GetOrdersQuery) setOffset(offset int) error {
	if offset < 0 {
		return errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded")
	}
	q.offset = offset
	return nil
}
