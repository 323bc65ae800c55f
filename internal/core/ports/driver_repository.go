// Package ports defines repository interfaces for the order and driver
// domains. These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"resto/internal/core/domain/model/driver"
	"resto/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for driver aggregates.
type DriverRepository interface {
	// Add persists a new driver aggregate to storage.
	// The driver must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update persists changes to an existing driver aggregate using a
	// compare-and-swap on the aggregate's version. Returns
	// errs.ErrConcurrentModification when the stored version moved since
	// the aggregate was read.
	Update(ctx context.Context, aggregate *driver.Driver) error

	// Get retrieves a driver aggregate by its handle.
	Get(ctx context.Context, id string) (*driver.Driver, error)

	// GetAllAssignable retrieves drivers that are available, online, and
	// carrying nothing, restricted to drivers whose branch set intersects
	// the given branches. Results are ordered longest idle first so the
	// picker spreads work across the fleet.
	GetAllAssignable(ctx context.Context, branches kernel.BranchSet) ([]*driver.Driver, error)

	// GetAllCarrying retrieves drivers whose assigned-order reference is
	// set. Used by reconciliation to detect dangling back-references.
	GetAllCarrying(ctx context.Context) ([]*driver.Driver, error)
}
