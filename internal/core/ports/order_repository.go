// Package ports defines the contracts between the order lifecycle core and
// infrastructure: persistence, the payment collaborator, and the
// notification relay. These interfaces enable dependency inversion and
// testability.
package ports

import (
	"context"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns ObjectNotFoundError if no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateStatusGuarded persists the aggregate's status change as a
	// compare-and-swap: the write applies only if the stored status still
	// equals expected (the status the caller read before mutating).
	// Zero affected rows means another caller transitioned the order
	// first; the repository returns ConflictError and the caller must
	// re-read, never overwrite blindly.
	UpdateStatusGuarded(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// UpdateCookingTime persists the aggregate's estimated cooking time.
	// The write is guarded on the stored status still being inside the
	// allowed window, so a concurrent transition past the window surfaces
	// as ConflictError rather than a silent late write.
	UpdateCookingTime(ctx context.Context, aggregate *order.Order, allowed []order.Status) error
}
