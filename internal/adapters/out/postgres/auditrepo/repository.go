package auditrepo

import (
	"context"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormAuditTrail implements AuditTrail using GORM. Appends run on the main
// connection, outside any business transaction: the entry describes a
// transition that has already been committed.
type GormAuditTrail struct {
	db *gorm.DB
}

// NewGormAuditTrail creates a new GORM audit trail.
func NewGormAuditTrail(db *gorm.DB) *GormAuditTrail {
	return &GormAuditTrail{db: db}
}

// Append inserts one audit entry.
func (t *GormAuditTrail) Append(ctx context.Context, entry order.StatusChange) error {
	dto := fromDomain(entry)
	return t.db.WithContext(ctx).Create(&dto).Error
}

// ListByOrder returns all entries for an order, oldest first. Entries that
// share a timestamp keep their insertion order.
func (t *GormAuditTrail) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]order.StatusChange, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StatusChangeDTO
	err := t.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("occurred_at ASC, id ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]order.StatusChange, 0, len(dtos))
	for _, dto := range dtos {
		entry, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
