// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed by restaurant and status for the owner-facing list queries.
type OrderDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber  string    `gorm:"uniqueIndex"`
	RestaurantID uuid.UUID `gorm:"type:uuid;index:idx_orders_restaurant_status"`
	CustomerID   uuid.UUID `gorm:"type:uuid"`

	Status        int `gorm:"index:idx_orders_restaurant_status"`
	PaymentStatus int

	Items   []ItemDTO  `gorm:"serializer:json;type:jsonb"`
	Pricing PricingDTO `gorm:"embedded;embeddedPrefix:pricing_"`

	DeliveryAddress string
	SpecialRequests string

	EstimatedCookingTime int

	CreatedAt          time.Time `gorm:"index"`
	ConfirmedAt        *time.Time
	CookingStartedAt   *time.Time
	CookingCompletedAt *time.Time
	DeliveredAt        *time.Time
	RejectedAt         *time.Time

	RejectionReason *string
	RejectionDetail *string
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one order line stored inside the jsonb items column. Lines are
// a snapshot taken at order time and never change, so a nested document is
// simpler than a child table.
type ItemDTO struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

// PricingDTO represents the embedded monetary breakdown within the order
// table, in minor currency units.
type PricingDTO struct {
	Subtotal    int64
	DeliveryFee int64
	Discount    int64
	Total       int64
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	var rejectionReason, rejectionDetail *string
	if rejection := aggregate.Rejection(); rejection != nil {
		reason := string(rejection.Reason())
		detail := rejection.Detail()
		rejectionReason = &reason
		rejectionDetail = &detail
	}

	pricing := aggregate.Pricing()

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		OrderNumber:   aggregate.OrderNumber(),
		RestaurantID:  aggregate.RestaurantID().Bytes(),
		CustomerID:    aggregate.CustomerID().Bytes(),
		Status:        int(aggregate.Status()),
		PaymentStatus: int(aggregate.PaymentStatus()),
		Items:         items,
		Pricing: PricingDTO{
			Subtotal:    pricing.Subtotal,
			DeliveryFee: pricing.DeliveryFee,
			Discount:    pricing.Discount,
			Total:       pricing.Total,
		},
		DeliveryAddress:      aggregate.DeliveryAddress(),
		SpecialRequests:      aggregate.SpecialRequests(),
		EstimatedCookingTime: aggregate.EstimatedCookingTime(),
		CreatedAt:            aggregate.CreatedAt(),
		ConfirmedAt:          aggregate.ConfirmedAt(),
		CookingStartedAt:     aggregate.CookingStartedAt(),
		CookingCompletedAt:   aggregate.CookingCompletedAt(),
		DeliveredAt:          aggregate.DeliveredAt(),
		RejectedAt:           aggregate.RejectedAt(),
		RejectionReason:      rejectionReason,
		RejectionDetail:      rejectionDetail,
	}
}

// toDomain converts a database row to an order aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, item := range dto.Items {
		items = append(items, order.Item{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	var rejection *order.Rejection
	if dto.RejectionReason != nil && dto.RejectedAt != nil {
		detail := ""
		if dto.RejectionDetail != nil {
			detail = *dto.RejectionDetail
		}
		r, rejErr := order.NewRejection(
			order.RejectionReason(*dto.RejectionReason), detail, *dto.RejectedAt,
		)
		if rejErr != nil {
			return nil, rejErr
		}
		rejection = &r
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:            id,
		OrderNumber:   dto.OrderNumber,
		RestaurantID:  restaurantID,
		CustomerID:    customerID,
		Status:        order.Status(dto.Status),
		PaymentStatus: order.PaymentStatus(dto.PaymentStatus),
		Items:         items,
		Pricing: order.Pricing{
			Subtotal:    dto.Pricing.Subtotal,
			DeliveryFee: dto.Pricing.DeliveryFee,
			Discount:    dto.Pricing.Discount,
			Total:       dto.Pricing.Total,
		},
		DeliveryAddress:      dto.DeliveryAddress,
		SpecialRequests:      dto.SpecialRequests,
		EstimatedCookingTime: dto.EstimatedCookingTime,
		CreatedAt:            dto.CreatedAt,
		ConfirmedAt:          dto.ConfirmedAt,
		CookingStartedAt:     dto.CookingStartedAt,
		CookingCompletedAt:   dto.CookingCompletedAt,
		DeliveredAt:          dto.DeliveredAt,
		RejectedAt:           dto.RejectedAt,
		Rejection:            rejection,
	})
}
