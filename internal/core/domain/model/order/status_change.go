package order

import (
	"fmt"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
)

// ChangeKind distinguishes audit trail entry types.
type ChangeKind string

const (
	// KindStatusChange records a status transition.
	KindStatusChange ChangeKind = "STATUS_CHANGE"

	// KindCookingTimeSet records a cooking-time update. No status edge is
	// crossed, so FromStatus equals ToStatus.
	KindCookingTimeSet ChangeKind = "COOKING_TIME_SET"
)

// StatusChange is one append-only audit trail entry. Created once per
// transition (or freeform event) and immutable thereafter; entries are
// exclusively owned by the order they reference and are never trimmed.
type StatusChange struct {
	OrderID    kernel.UUID
	Kind       ChangeKind
	FromStatus Status
	ToStatus   Status
	ChangedBy  kernel.UUID
	Reason     string
	OccurredAt time.Time
}

// NewStatusChange builds the audit entry for a status transition.
func NewStatusChange(
	orderID kernel.UUID, from, to Status, changedBy kernel.UUID, reason string, occurredAt time.Time,
) StatusChange {
	return StatusChange{
		OrderID:    orderID,
		Kind:       KindStatusChange,
		FromStatus: from,
		ToStatus:   to,
		ChangedBy:  changedBy,
		Reason:     reason,
		OccurredAt: occurredAt,
	}
}

// NewCookingTimeEvent builds the freeform audit entry for a cooking-time
// update. The minutes value is folded into the reason text alongside any
// caller-supplied reason.
func NewCookingTimeEvent(
	orderID kernel.UUID, status Status, changedBy kernel.UUID, minutes int, reason string, occurredAt time.Time,
) StatusChange {
	text := fmt.Sprintf("cooking time set to %d minutes", minutes)
	if reason != "" {
		text = fmt.Sprintf("%s: %s", text, reason)
	}

	return StatusChange{
		OrderID:    orderID,
		Kind:       KindCookingTimeSet,
		FromStatus: status,
		ToStatus:   status,
		ChangedBy:  changedBy,
		Reason:     text,
		OccurredAt: occurredAt,
	}
}
