package ports

import (
	"context"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
)

// AuditTrail is the append-only log of status changes. Entries are never
// mutated or deleted.
//
// Append runs after the status change has been committed; the state store
// is authoritative and the audit record is derived. A failing Append is
// surfaced to operators through logging, never propagated to the caller
// of the already-committed transition.
type AuditTrail interface {
	// Append stores one audit entry.
	Append(ctx context.Context, entry order.StatusChange) error

	// ListByOrder returns all entries for an order, oldest first.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]order.StatusChange, error)
}
