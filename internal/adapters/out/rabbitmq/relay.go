// Package rabbitmq publishes order notifications to a RabbitMQ topic
// exchange. Owner apps and the customer-facing service consume from their
// own bindings; this backend only produces.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ExchangeName is the topic exchange all order notifications go through.
const ExchangeName = "order_notifications"

// notificationMessage is the wire form of one published notification.
type notificationMessage struct {
	OrderID      string    `json:"orderId"`
	OrderNumber  string    `json:"orderNumber"`
	Event        string    `json:"event"`
	Status       string    `json:"status"`
	Message      string    `json:"message,omitempty"`
	RecipientID  string    `json:"recipientId"`
	RestaurantID string    `json:"restaurantId,omitempty"`
	PublishedAt  time.Time `json:"publishedAt"`
}

// NotificationRelay implements ports.NotificationRelay on top of an AMQP
// connection. Each publish opens a short-lived channel; channels are cheap
// and not safe for concurrent use.
type NotificationRelay struct {
	conn *amqp.Connection
}

// NewNotificationRelay creates a relay on an established AMQP connection
// and declares the exchange.
func NewNotificationRelay(conn *amqp.Connection) (*NotificationRelay, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err = ch.ExchangeDeclare(ExchangeName, "topic", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &NotificationRelay{conn: conn}, nil
}

// NotifyOwner publishes to owner.<restaurantID> so each restaurant's owner
// app can bind its own queue.
func (r *NotificationRelay) NotifyOwner(
	ctx context.Context, ownerID, restaurantID kernel.UUID, n ports.Notification,
) error {
	msg := notificationMessage{
		OrderID:      n.OrderID.String(),
		OrderNumber:  n.OrderNumber,
		Event:        n.Event,
		Status:       n.Status,
		Message:      n.Message,
		RecipientID:  ownerID.String(),
		RestaurantID: restaurantID.String(),
		PublishedAt:  time.Now().UTC(),
	}
	return r.publish(ctx, "owner."+restaurantID.String(), msg)
}

// NotifyCustomer publishes to customer.<customerID>.
func (r *NotificationRelay) NotifyCustomer(
	ctx context.Context, customerID kernel.UUID, n ports.Notification,
) error {
	msg := notificationMessage{
		OrderID:     n.OrderID.String(),
		OrderNumber: n.OrderNumber,
		Event:       n.Event,
		Status:      n.Status,
		Message:     n.Message,
		RecipientID: customerID.String(),
		PublishedAt: time.Now().UTC(),
	}
	return r.publish(ctx, "customer."+customerID.String(), msg)
}

func (r *NotificationRelay) publish(ctx context.Context, routingKey string, msg notificationMessage) error {
	ch, err := r.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	err = ch.PublishWithContext(ctx, ExchangeName, routingKey, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Timestamp:    msg.PublishedAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}
