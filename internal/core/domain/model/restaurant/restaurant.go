// Package restaurant contains the restaurant entity. The order backend only
// needs it to resolve ownership: every mutation checks the acting owner
// against the restaurant that the order belongs to.
package restaurant

import (
	"errors"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
)

// ErrRestaurantIsNotConstructed is returned when a Restaurant instance was
// not created through NewRestaurant.
var ErrRestaurantIsNotConstructed = errors.New("Restaurant must be created via NewRestaurant")

// Restaurant is the ownership anchor for orders: an order belongs to a
// restaurant, a restaurant belongs to an owner.
type Restaurant struct {
	id      kernel.UUID
	ownerID kernel.UUID
	name    string

	isConstructed bool
}

// NewRestaurant creates a restaurant with a validated identity and owner.
func NewRestaurant(id, ownerID kernel.UUID, name string) (*Restaurant, error) {
	r := &Restaurant{isConstructed: true}

	if err := errors.Join(
		r.setID(id),
		r.setOwnerID(ownerID),
		r.setName(name),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate ensures the Restaurant instance was properly constructed.
func (r *Restaurant) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRestaurantIsNotConstructed
	}
	return nil
}

func (r *Restaurant) ID() kernel.UUID { return r.id }
func (r *Restaurant) OwnerID() kernel.UUID { return r.ownerID }
func (r *Restaurant) Name() string { return r.name }

// IsOwnedBy reports whether the given owner controls this restaurant.
func (r *Restaurant) IsOwnedBy(ownerID kernel.UUID) bool {
	return r.ownerID.IsEqual(ownerID)
}

func (r *Restaurant) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Restaurant) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	r.ownerID = ownerID
	return nil
}

func (r *Restaurant) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	r.name = name
	return nil
}
