// Package commands contains business operations that modify order state.
// Implements the Command pattern for write operations: every command is a
// constructor-validated value, every handler runs the same shape of flow —
// ownership check, state-machine validation, guarded (compare-and-swap)
// persistence, then best-effort audit and notification side effects after
// the commit.
package commands

import (
	"context"

	"orderdesk/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW manages transactions for order mutations. Each single-order
	// operation runs inside its own unit of work; there is no transaction
	// spanning multiple orders of a bulk action.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)
