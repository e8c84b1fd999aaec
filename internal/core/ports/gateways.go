package ports

import (
	"context"

	"orderdesk/internal/core/domain/model/kernel"
)

// Payment is the collaborator's view of a captured payment.
type Payment struct {
	PaymentKey string
	OrderID    kernel.UUID
	Amount     int64
	Status     string
}

// PaymentGateway wraps the external payment collaborator. Calls are
// blocking and time-bounded through the context; failures map to
// ExternalServiceError and are never retried synchronously.
type PaymentGateway interface {
	// GetPaymentByOrderID resolves the payment captured for an order.
	GetPaymentByOrderID(ctx context.Context, orderID kernel.UUID) (Payment, error)

	// CancelPayment refunds the given amount against a payment key.
	CancelPayment(ctx context.Context, paymentKey, reason string, amount int64) error
}

// Notification is the payload dispatched on order events.
type Notification struct {
	OrderID     kernel.UUID
	OrderNumber string
	Event       string
	Status      string
	Message     string
}

// NotificationRelay dispatches best-effort notifications. A failure or
// timeout is logged by the caller and never blocks or rolls back the
// transition that triggered it.
type NotificationRelay interface {
	NotifyOwner(ctx context.Context, ownerID, restaurantID kernel.UUID, n Notification) error
	NotifyCustomer(ctx context.Context, customerID kernel.UUID, n Notification) error
}
