package orderrepo

import (
	"context"
	"errors"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/pkg/errs"

	"gorm.io/gorm"
)

// statusColumns is the set of columns a status transition may touch. Listed
// explicitly so the guarded update writes zero-valued and NULL fields too.
func statusColumns() []string {
	return []string{
		"status",
		"payment_status",
		"estimated_cooking_time",
		"confirmed_at",
		"cooking_started_at",
		"cooking_completed_at",
		"delivered_at",
		"rejected_at",
		"rejection_reason",
		"rejection_detail",
	}
}

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateStatusGuarded persists a status transition as a compare-and-swap on
// the stored status. The WHERE clause carries the status the caller read, so
// the write applies only if no concurrent transition happened in between.
// Zero affected rows means the guard failed and the caller must re-read.
func (r *GormOrderRepository) UpdateStatusGuarded(
	ctx context.Context, aggregate *order.Order, expected order.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Select(statusColumns()).
		Where("id = ? AND status = ?", dto.ID, int(expected)).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateCookingTime persists the cooking estimate, guarded on the stored
// status still being inside the allowed window.
func (r *GormOrderRepository) UpdateCookingTime(
	ctx context.Context, aggregate *order.Order, allowed []order.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	window := make([]int, 0, len(allowed))
	for _, s := range allowed {
		window = append(window, int(s))
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status IN ?", aggregate.ID().Bytes(), window).
		Update("estimated_cooking_time", aggregate.EstimatedCookingTime())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}
