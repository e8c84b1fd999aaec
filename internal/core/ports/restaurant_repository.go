package ports

import (
	"context"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/restaurant"
)

// RestaurantRepository resolves restaurants for ownership checks.
type RestaurantRepository interface {
	// Get retrieves a restaurant by its unique identifier.
	// Returns ObjectNotFoundError if no such restaurant exists.
	Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error)

	// Add persists a new restaurant.
	Add(ctx context.Context, aggregate *restaurant.Restaurant) error
}
