// Package restaurantrepo persists restaurants. The order backend reads them
// for ownership checks; writes only happen during onboarding.
package restaurantrepo

import (
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/restaurant"

	"github.com/google/uuid"
)

// RestaurantDTO represents the database structure for persisting restaurants.
type RestaurantDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID uuid.UUID `gorm:"type:uuid;index"`
	Name    string
}

// TableName overrides GORM's default naming convention to use "restaurants".
func (RestaurantDTO) TableName() string {
	return "restaurants"
}

func fromDomain(aggregate *restaurant.Restaurant) RestaurantDTO {
	return RestaurantDTO{
		ID:      aggregate.ID().Bytes(),
		OwnerID: aggregate.OwnerID().Bytes(),
		Name:    aggregate.Name(),
	}
}

func toDomain(dto RestaurantDTO) (*restaurant.Restaurant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	return restaurant.NewRestaurant(id, ownerID, dto.Name)
}
