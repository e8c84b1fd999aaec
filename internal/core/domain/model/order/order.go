package order

import (
	"errors"
	"fmt"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	errRejectionNeedsReason = errors.New("rejection requires a reason; use Reject instead of ChangeStatus")
	errCookingWindowClosed  = errors.New("cooking time can only be set while NEW, CONFIRMED, or PREPARING")
)

// Cooking time bounds in minutes.
const (
	MinCookingTime = 1
	MaxCookingTime = 180
)

// Item is one line of an order: a menu item snapshot taken at order time.
// Immutable after creation.
type Item struct {
	Name      string
	Quantity  int
	UnitPrice int64
}

// Pricing is the monetary breakdown of an order in minor currency units.
// Immutable after creation.
type Pricing struct {
	Subtotal    int64
	DeliveryFee int64
	Discount    int64
	Total       int64
}

// Order is the aggregate root of the order-management domain. It owns the
// status lifecycle and enforces every transition through the state machine.
//
// Invariants:
//   - status changes only through ChangeStatus or Reject, both of which
//     consult the transition table
//   - each per-status timestamp is set exactly once, the first time the
//     corresponding status is entered, and never overwritten
//   - a rejection record exists iff status is Rejected
//   - the cooking time is writable only while status is New, Confirmed,
//     or Preparing
//
// Order uses private fields to ensure encapsulation; instances must be
// created via NewOrder or rehydrated via RestoreOrder.
type Order struct {
	id           kernel.UUID
	orderNumber  string
	restaurantID kernel.UUID
	customerID   kernel.UUID

	status        Status
	paymentStatus PaymentStatus

	items           []Item
	pricing         Pricing
	deliveryAddress string
	specialRequests string

	// estimatedCookingTime in minutes; 0 means not set.
	estimatedCookingTime int

	createdAt          time.Time
	confirmedAt        *time.Time
	cookingStartedAt   *time.Time
	cookingCompletedAt *time.Time
	deliveredAt        *time.Time
	rejectedAt         *time.Time

	rejection *Rejection

	isConstructed bool
}

// NewOrder creates an incoming order in New status with a pending payment.
// Order creation itself belongs to the customer-facing flow; this constructor
// exists for that flow's adapter and for tests.
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	restaurantID kernel.UUID,
	customerID kernel.UUID,
	items []Item,
	pricing Pricing,
	deliveryAddress string,
	specialRequests string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        New,
		paymentStatus: PaymentPending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setRestaurantID(restaurantID),
		o.setCustomerID(customerID),
		o.setItems(items),
		o.setPricing(pricing),
		o.setDeliveryAddress(deliveryAddress),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	o.specialRequests = specialRequests
	return o, nil
}

// RestoreParams carries the full persisted state of an order for rehydration.
type RestoreParams struct {
	ID                   kernel.UUID
	OrderNumber          string
	RestaurantID         kernel.UUID
	CustomerID           kernel.UUID
	Status               Status
	PaymentStatus        PaymentStatus
	Items                []Item
	Pricing              Pricing
	DeliveryAddress      string
	SpecialRequests      string
	EstimatedCookingTime int
	CreatedAt            time.Time
	ConfirmedAt          *time.Time
	CookingStartedAt     *time.Time
	CookingCompletedAt   *time.Time
	DeliveredAt          *time.Time
	RejectedAt           *time.Time
	Rejection            *Rejection
}

// RestoreOrder reconstructs an order from persistence without re-running
// creation-time validation of immutable fields, but still refusing invalid
// statuses and the rejection/status mismatch.
func RestoreOrder(p RestoreParams) (*Order, error) {
	if err := errors.Join(
		p.ID.Validate(),
		p.RestaurantID.Validate(),
		p.CustomerID.Validate(),
		p.Status.Validate(),
		p.PaymentStatus.Validate(),
	); err != nil {
		return nil, err
	}

	if (p.Status == Rejected) != (p.Rejection != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause("rejection",
			fmt.Errorf("rejection record present=%t but status is %s", p.Rejection != nil, p.Status))
	}

	return &Order{
		id:                   p.ID,
		orderNumber:          p.OrderNumber,
		restaurantID:         p.RestaurantID,
		customerID:           p.CustomerID,
		status:               p.Status,
		paymentStatus:        p.PaymentStatus,
		items:                p.Items,
		pricing:              p.Pricing,
		deliveryAddress:      p.DeliveryAddress,
		specialRequests:      p.SpecialRequests,
		estimatedCookingTime: p.EstimatedCookingTime,
		createdAt:            p.CreatedAt,
		confirmedAt:          p.ConfirmedAt,
		cookingStartedAt:     p.CookingStartedAt,
		cookingCompletedAt:   p.CookingCompletedAt,
		deliveredAt:          p.DeliveredAt,
		rejectedAt:           p.RejectedAt,
		rejection:            p.Rejection,
		isConstructed:        true,
	}, nil
}

// NewRejection builds a rejection record. Exposed for rehydration.
func NewRejection(reason RejectionReason, detail string, rejectedAt time.Time) (Rejection, error) {
	if err := reason.Validate(); err != nil {
		return Rejection{}, err
	}
	return Rejection{reason: reason, detail: detail, rejectedAt: rejectedAt}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) OrderNumber() string { return o.orderNumber }
func (o *Order) RestaurantID() kernel.UUID { return o.restaurantID }
func (o *Order) CustomerID() kernel.UUID { return o.customerID }
func (o *Order) Status() Status { return o.status }
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }
func (o *Order) Pricing() Pricing { return o.pricing }
func (o *Order) DeliveryAddress() string { return o.deliveryAddress }
func (o *Order) SpecialRequests() string { return o.specialRequests }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) ConfirmedAt() *time.Time { return o.confirmedAt }
func (o *Order) CookingStartedAt() *time.Time { return o.cookingStartedAt }
func (o *Order) CookingCompletedAt() *time.Time { return o.cookingCompletedAt }
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }
func (o *Order) RejectedAt() *time.Time { return o.rejectedAt }

// Items returns a copy of the order lines to preserve immutability.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// EstimatedCookingTime returns the cooking time in minutes; 0 means unset.
func (o *Order) EstimatedCookingTime() int {
	return o.estimatedCookingTime
}

// Rejection returns the rejection record, or nil unless status is Rejected.
func (o *Order) Rejection() *Rejection {
	return o.rejection
}

// Age returns how long the order has existed relative to now.
func (o *Order) Age(now time.Time) time.Duration {
	return now.Sub(o.createdAt)
}

// IsUrgent reports whether the order has waited more than the given
// threshold without an owner decision (status still New or Confirmed).
func (o *Order) IsUrgent(now time.Time, threshold time.Duration) bool {
	return (o.status == New || o.status == Confirmed) && o.Age(now) > threshold
}

// ChangeStatus moves the order along a legal edge of the state machine and
// stamps the status-specific timestamp on first entry.
//
// Transitions into Rejected must go through Reject, which records the
// mandatory reason; ChangeStatus refuses them with an InvalidTransitionError
// so callers see the same error class as for any other refused edge.
func (o *Order) ChangeStatus(to Status, now time.Time) error {
	if err := ValidateTransition(o.status, to); err != nil {
		return err
	}

	if to == Rejected {
		return errs.NewInvalidTransitionErrorWithCause(
			o.status.String(), to.String(), errRejectionNeedsReason,
		)
	}

	o.status = to
	o.stampStatusTime(to, now)
	return nil
}

// Reject declines the order with a classified reason. Legal only while the
// order is New or Confirmed, which is exactly what the transition table
// allows for the Rejected target.
func (o *Order) Reject(reason RejectionReason, detail string, now time.Time) error {
	if err := reason.Validate(); err != nil {
		return err
	}

	if err := ValidateTransition(o.status, Rejected); err != nil {
		return err
	}

	o.status = Rejected
	o.stampStatusTime(Rejected, now)
	o.rejection = &Rejection{reason: reason, detail: detail, rejectedAt: *o.rejectedAt}
	return nil
}

// SetCookingTime updates the estimated cooking time in minutes. Allowed only
// while the order is New, Confirmed, or Preparing; afterwards the kitchen is
// done and the estimate is frozen.
func (o *Order) SetCookingTime(minutes int) error {
	if minutes < MinCookingTime || minutes > MaxCookingTime {
		return errs.NewValueIsOutOfRangeError("cookingTime", minutes, MinCookingTime, MaxCookingTime)
	}

	if o.status != New && o.status != Confirmed && o.status != Preparing {
		return errs.NewInvalidTransitionErrorWithCause(
			o.status.String(), o.status.String(), errCookingWindowClosed,
		)
	}

	o.estimatedCookingTime = minutes
	return nil
}

// stampStatusTime sets the per-status timestamp the first time the status is
// entered. Existing values are never overwritten.
func (o *Order) stampStatusTime(s Status, now time.Time) {
	stamp := func(field **time.Time) {
		if *field == nil {
			t := now
			*field = &t
		}
	}

	switch s {
	case Confirmed:
		stamp(&o.confirmedAt)
	case Preparing:
		stamp(&o.cookingStartedAt)
	case Ready:
		stamp(&o.cookingCompletedAt)
	case Completed:
		stamp(&o.deliveredAt)
	case Rejected:
		stamp(&o.rejectedAt)
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.restaurantID = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.customerID = id
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("items",
				fmt.Errorf("quantity %d of %q is not greater than 0", item.Quantity, item.Name))
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setPricing(pricing Pricing) error {
	if pricing.Total < 0 || pricing.Subtotal < 0 {
		return errs.NewValueIsInvalidErrorWithCause("pricing",
			fmt.Errorf("amounts must not be negative"))
	}
	o.pricing = pricing
	return nil
}

func (o *Order) setDeliveryAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}
	o.deliveryAddress = address
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}
