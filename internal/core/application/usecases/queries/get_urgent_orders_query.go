package queries

import (
	"errors"
	"time"

	"orderdesk/internal/pkg/errs"
	"orderdesk/internal/pkg/guard"
)

var (
	ErrGetUrgentOrdersQueryIsNotConstructed = errors.New(
		"GetUrgentOrdersQuery must be created via NewGetUrgentOrdersQuery constructor",
	)
)

// GetUrgentOrdersQuery retrieves orders across all restaurants that have
// waited past the urgency threshold without an owner decision. Used by the
// reminder job, not by the owner-facing API, so it carries no owner scope.
type GetUrgentOrdersQuery struct { //nolint:recvcheck //using for validation
	urgentAfter time.Duration

	guard guard.ConstructorGuard
}

// NewGetUrgentOrdersQuery creates a validated reminder scan request.
// urgentAfter of 0 falls back to DefaultUrgentAfter.
func NewGetUrgentOrdersQuery(urgentAfter time.Duration) (GetUrgentOrdersQuery, error) {
	q := GetUrgentOrdersQuery{guard: guard.NewConstructorGuard()}

	if err := q.setUrgentAfter(urgentAfter); err != nil {
		return GetUrgentOrdersQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUrgentOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUrgentOrdersQueryIsNotConstructed)
}

// UrgentAfter returns the urgency threshold.
func (q GetUrgentOrdersQuery) UrgentAfter() time.Duration {
	return q.urgentAfter
}

func (q *GetUrgentOrdersQuery) setUrgentAfter(urgentAfter time.Duration) error {
	if urgentAfter < 0 {
		return errs.NewValueIsOutOfRangeError("urgentAfter", urgentAfter, 0, "unbounded")
	}
	if urgentAfter == 0 {
		urgentAfter = DefaultUrgentAfter
	}
	q.urgentAfter = urgentAfter
	return nil
}
