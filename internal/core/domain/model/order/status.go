package order

import (
	"fmt"

	"orderdesk/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct restaurant workflow.
//
// State transitions:
//
//	New ──────┬──> Confirmed ──┬──> Preparing ──> Ready ──> Completed
//	          │                │
//	          └──> Rejected <──┘
//
// Completed, Rejected, and Cancelled are terminal: they have no outgoing
// edges. Cancelled is entered by the customer-facing flow, never by the
// owner backend, but the state machine still recognizes it as terminal.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// New is the initial status of an incoming order awaiting an
	// owner decision (accept or reject).
	New

	// Confirmed indicates the owner accepted the order.
	Confirmed

	// Preparing indicates the kitchen started cooking.
	Preparing

	// Ready indicates cooking finished and the order awaits handoff.
	Ready

	// Completed indicates the order was delivered. Terminal.
	Completed

	// Rejected indicates the owner declined the order. Terminal.
	// An order can only be rejected while New or Confirmed.
	Rejected

	// Cancelled indicates the customer withdrew the order. Terminal.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		New:       "NEW",
		Confirmed: "CONFIRMED",
		Preparing: "PREPARING",
		Ready:     "READY",
		Completed: "COMPLETED",
		Rejected:  "REJECTED",
		Cancelled: "CANCELLED",
	}
}

// transitions returns the fixed adjacency table of legal status edges.
// Terminal statuses map to an empty set. This table is the single source
// of truth: no transition decision lives anywhere else.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		New:       {Confirmed, Rejected},
		Confirmed: {Preparing, Rejected},
		Preparing: {Ready},
		Ready:     {Completed},
		Completed: {},
		Rejected:  {},
		Cancelled: {},
	}
}

// AllStatuses returns every valid status, in lifecycle order.
// Useful for exhaustive checks and test truth tables.
func AllStatuses() []Status {
	return []Status{New, Confirmed, Preparing, Ready, Completed, Rejected, Cancelled}
}

// StatusFromString parses the uppercase wire form ("NEW", "CONFIRMED", ...).
// Returns an error for unrecognized or unknown values.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// String returns the uppercase token for the status, or "UNKNOWN" for
// invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate checks that the Status value is one of the defined statuses.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := transitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	edges, ok := transitions()[s]
	return ok && len(edges) == 0
}

// CanTransition reports whether the edge from -> to appears in the
// transition table. Pure function: no side effects, no I/O.
func CanTransition(from, to Status) bool {
	for _, next := range transitions()[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns an InvalidTransitionError if the edge
// from -> to is not in the transition table.
func ValidateTransition(from, to Status) error {
	if !CanTransition(from, to) {
		return errs.NewInvalidTransitionError(from.String(), to.String())
	}
	return nil
}
