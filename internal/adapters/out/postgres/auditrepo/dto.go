// Package auditrepo persists the append-only status history of orders.
// Rows are only ever inserted; there is no update or delete path.
package auditrepo

import (
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// StatusChangeDTO represents one row of the order status history.
// The surrogate bigserial key preserves insertion order for entries that
// share a timestamp.
type StatusChangeDTO struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	Kind       string
	FromStatus int
	ToStatus   int
	ChangedBy  uuid.UUID `gorm:"type:uuid"`
	Reason     string
	OccurredAt time.Time `gorm:"index"`
}

// TableName overrides GORM's default naming convention.
func (StatusChangeDTO) TableName() string {
	return "order_status_history"
}

func fromDomain(entry order.StatusChange) StatusChangeDTO {
	return StatusChangeDTO{
		OrderID:    entry.OrderID.Bytes(),
		Kind:       string(entry.Kind),
		FromStatus: int(entry.FromStatus),
		ToStatus:   int(entry.ToStatus),
		ChangedBy:  entry.ChangedBy.Bytes(),
		Reason:     entry.Reason,
		OccurredAt: entry.OccurredAt,
	}
}

func toDomain(dto StatusChangeDTO) (order.StatusChange, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.StatusChange{}, err
	}
	changedBy, err := kernel.UUIDFromBytes(dto.ChangedBy[:])
	if err != nil {
		return order.StatusChange{}, err
	}

	return order.StatusChange{
		OrderID:    orderID,
		Kind:       order.ChangeKind(dto.Kind),
		FromStatus: order.Status(dto.FromStatus),
		ToStatus:   order.Status(dto.ToStatus),
		ChangedBy:  changedBy,
		Reason:     dto.Reason,
		OccurredAt: dto.OccurredAt,
	}, nil
}
