// Package order contains the order aggregate and its status state machine.
//
// The aggregate owns the order lifecycle: every status change goes through
// the fixed transition table in status.go, per-status timestamps are stamped
// exactly once, and rejection records exist only on rejected orders. The
// payment lifecycle is read here but owned by the payment collaborator.
package order
