package ports

import (
	"context"
	"time"

	"resto/internal/core/domain/model/kernel"
	"resto/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate using a
	// compare-and-swap on the aggregate's version. Returns
	// errs.ErrConcurrentModification when the stored version moved since
	// the aggregate was read.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllAwaitingAssignment retrieves delivery orders whose
	// auto-assignment marker was set at or before the cutoff, oldest
	// marker first. The dispatch loop uses this to drain the queue in
	// request order.
	GetAllAwaitingAssignment(ctx context.Context, cutoff time.Time) ([]*order.Order, error)

	// GetAllAssignedToRider retrieves active delivery orders currently
	// referencing the given rider. Used by reconciliation to verify the
	// driver back-reference.
	GetAllAssignedToRider(ctx context.Context, riderID string) ([]*order.Order, error)
}
