package order

import (
	"fmt"

	"orderdesk/internal/pkg/errs"
)

// PaymentStatus is the independent payment lifecycle of an order. The
// rejection workflow reads it to decide whether a refund applies, but
// never owns or advances it: the payment collaborator does.
type PaymentStatus int

const (
	PaymentUnknown PaymentStatus = iota

	// PaymentPending means payment has not been captured yet.
	PaymentPending

	// PaymentCompleted means the customer paid in full. Rejecting a
	// PaymentCompleted order with auto-refund triggers the refund flow.
	PaymentCompleted

	// PaymentFailed means the capture attempt failed.
	PaymentFailed

	// PaymentRefunded means the payment collaborator confirmed a refund.
	PaymentRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown:   "UNKNOWN",
		PaymentPending:   "PENDING",
		PaymentCompleted: "COMPLETED",
		PaymentFailed:    "FAILED",
		PaymentRefunded:  "REFUNDED",
	}
}

// String returns the uppercase token for the payment status.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate checks that the PaymentStatus is one of the defined values.
func (s PaymentStatus) Validate() error {
	if s == PaymentUnknown {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	if _, ok := getPaymentStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}
