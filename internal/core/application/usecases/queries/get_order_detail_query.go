package queries

import (
	"errors"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/guard"
)

var (
	ErrGetOrderDetailQueryIsNotConstructed = errors.New(
		"GetOrderDetailQuery must be created via NewGetOrderDetailQuery constructor",
	)
)

// GetOrderDetailQuery retrieves one order in full, including its status
// history.
type GetOrderDetailQuery struct { //nolint:recvcheck //using for validation
	ownerID kernel.UUID
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderDetailQuery creates a validated detail request.
func NewGetOrderDetailQuery(ownerID, orderID kernel.UUID) (GetOrderDetailQuery, error) {
	q := GetOrderDetailQuery{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		q.setOwnerID(ownerID),
		q.setOrderID(orderID),
	); err != nil {
		return GetOrderDetailQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderDetailQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderDetailQueryIsNotConstructed)
}

// OwnerID returns the acting owner's identifier.
func (q GetOrderDetailQuery) OwnerID() kernel.UUID {
	return q.ownerID
}

// OrderID returns the target order's identifier.
func (q GetOrderDetailQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetOrderDetailQuery) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	q.ownerID = ownerID
	return nil
}

func (q *GetOrderDetailQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	q.orderID = orderID
	return nil
}
