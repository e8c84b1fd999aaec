package order

import (
	"fmt"
	"time"

	"orderdesk/internal/pkg/errs"
)

// RejectionReason classifies why an owner declined an order.
type RejectionReason string

const (
	ReasonOutOfStock      RejectionReason = "OUT_OF_STOCK"
	ReasonTooBusy         RejectionReason = "TOO_BUSY"
	ReasonClosingSoon     RejectionReason = "CLOSING_SOON"
	ReasonDeliveryArea    RejectionReason = "DELIVERY_AREA"
	ReasonCustomerRequest RejectionReason = "CUSTOMER_REQUEST"
	ReasonOther           RejectionReason = "OTHER"
)

func validRejectionReasons() map[RejectionReason]struct{} {
	return map[RejectionReason]struct{}{
		ReasonOutOfStock:      {},
		ReasonTooBusy:         {},
		ReasonClosingSoon:     {},
		ReasonDeliveryArea:    {},
		ReasonCustomerRequest: {},
		ReasonOther:           {},
	}
}

// Validate checks that the reason is one of the defined values.
func (r RejectionReason) Validate() error {
	if _, ok := validRejectionReasons()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("reason",
			fmt.Errorf("%q is not a valid rejection reason", string(r)))
	}
	return nil
}

// CustomerMessage returns the templated customer-facing message for the
// reason. Used when the caller does not supply an explicit message.
func (r RejectionReason) CustomerMessage() string {
	switch r {
	case ReasonOutOfStock:
		return "Sorry, your order was declined because an item is out of stock."
	case ReasonTooBusy:
		return "Sorry, the restaurant is too busy to take your order right now."
	case ReasonClosingSoon:
		return "Sorry, the restaurant is closing soon and cannot prepare your order."
	case ReasonDeliveryArea:
		return "Sorry, your address is outside the restaurant's delivery area."
	case ReasonCustomerRequest:
		return "Your order was cancelled at your request."
	default:
		return "Sorry, the restaurant was unable to accept your order."
	}
}

// Rejection records why and when an order was rejected.
// Present on an order iff its status is Rejected.
type Rejection struct {
	reason     RejectionReason
	detail     string
	rejectedAt time.Time
}

// Reason returns the classified rejection reason.
func (r Rejection) Reason() RejectionReason {
	return r.reason
}

// Detail returns the owner-supplied free-text detail, possibly empty.
func (r Rejection) Detail() string {
	return r.detail
}

// RejectedAt returns when the rejection happened.
func (r Rejection) RejectedAt() time.Time {
	return r.rejectedAt
}
