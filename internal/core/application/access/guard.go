// Package access implements the ownership guard called at the start of every
// operation: an owner may only read or mutate orders of restaurants they
// control.
package access

import (
	"context"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"
)

// Guard verifies that the acting owner controls the target restaurant or
// order by resolving the order -> restaurant -> owner chain through the
// restaurant store.
type Guard struct {
	restaurants ports.RestaurantRepository
}

// NewGuard creates an ownership guard backed by the given restaurant store.
func NewGuard(restaurants ports.RestaurantRepository) Guard {
	return Guard{restaurants: restaurants}
}

// AssertOwnerControlsRestaurant fails with ObjectNotFoundError if the
// restaurant does not exist and with ForbiddenError if it belongs to a
// different owner.
func (g Guard) AssertOwnerControlsRestaurant(ctx context.Context, ownerID, restaurantID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	if err := restaurantID.Validate(); err != nil {
		return err
	}

	r, err := g.restaurants.Get(ctx, restaurantID)
	if err != nil {
		return err
	}

	if !r.IsOwnedBy(ownerID) {
		return errs.NewForbiddenError(ownerID.String(), "restaurant "+restaurantID.String())
	}

	return nil
}

// AssertOwnerControlsOrder checks ownership of the restaurant the order
// belongs to.
func (g Guard) AssertOwnerControlsOrder(ctx context.Context, ownerID kernel.UUID, o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	return g.AssertOwnerControlsRestaurant(ctx, ownerID, o.RestaurantID())
}
