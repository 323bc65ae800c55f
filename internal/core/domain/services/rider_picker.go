package services

import (
	"errors"

	"resto/internal/core/domain/model/driver"
	"resto/internal/core/domain/model/order"
)

// ErrRiderNotFound is returned when no suitable rider is available for an
// order. This occurs when either no candidates are provided or none of the
// provided drivers is assignable and serves one of the order's branches.
var ErrRiderNotFound = errors.New("rider not found")

// RiderPicker is a domain service that selects a rider for a delivery order
// and executes both sides of the assignment.
//
// Key responsibilities:
//   - Validating the order before assignment
//   - Filtering candidates by availability, presence, and branch coverage
//   - Mutating order and driver together so the pair is persisted atomically
//
// Business rules:
//   - Only drivers that are available, online, and carrying nothing qualify
//   - The driver's branch set must intersect the order's branches
//   - Candidates are evaluated in the order given; callers supply them sorted
//     by longest idle time so work spreads across the fleet
//
// Example usage:
//
//	picker := services.NewRiderPicker()
//	chosen, err := picker.Pick(ord, candidates)
//	if errors.Is(err, services.ErrRiderNotFound) {
//	    // No assignable rider right now, retry on the next tick
//	    return
//	}
type RiderPicker struct{}

// NewRiderPicker creates a new RiderPicker instance.
func NewRiderPicker() RiderPicker {
	return RiderPicker{}
}

// Pick selects the first eligible candidate and assigns the order to it.
//
// Parameters:
//   - ord: The order to assign (must be a delivery order awaiting a rider)
//   - candidates: Drivers to consider, in preference order
//
// Returns:
//   - *driver.Driver: The driver now carrying the order
//   - error: ErrRiderNotFound if no candidate qualifies, or a validation or
//     assignment error from either aggregate
//
// Both aggregates are mutated before returning; the caller commits them in
// one transaction so the one-to-one link between order and driver holds.
func (p RiderPicker) Pick(ord *order.Order, candidates []*driver.Driver) (*driver.Driver, error) {
	if err := ord.Validate(); err != nil {
		return nil, err
	}

	chosen, err := p.findRider(ord, candidates)
	if err != nil {
		return nil, err
	}

	if err = ord.AssignRider(chosen.ID()); err != nil {
		return nil, err
	}

	if err = chosen.AssignOrder(ord.ID()); err != nil {
		return nil, err
	}

	return chosen, nil
}

// findRider returns the first candidate that is assignable and covers one of
// the order's branches.
func (p RiderPicker) findRider(ord *order.Order, candidates []*driver.Driver) (*driver.Driver, error) {
	for _, d := range candidates {
		if err := d.Validate(); err != nil {
			return nil, err
		}

		if !d.IsAssignable() {
			continue
		}

		if !d.ServesBranches(ord.Branches()) {
			continue
		}

		return d, nil
	}

	return nil, ErrRiderNotFound
}
