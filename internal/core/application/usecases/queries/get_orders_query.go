// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases and apply the
// caller's branch scope as a row filter instead of loading aggregates.
package queries

import (
	"errors"
	"time"

	"resto/internal/core/domain/model/access"
	"resto/internal/core/domain/model/order"
	"resto/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery retrieves the orders visible to the caller, newest first.
// An optional status filter narrows the listing to one lifecycle state; a
// branch admin only ever sees orders overlapping their branch scope.
//
// Example:
//
//	query, err := NewGetOrdersQuery(scope, order.NeedsRiderAssignment)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve orders: %w", err)
//	}
//
//	fmt.Printf("%d orders waiting for manual assignment\n", len(orders))
type GetOrdersQuery struct {
	scope  access.Scope
	status order.Status

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a query for the caller's visible orders. Pass
// order.Unknown as status to list all lifecycle states.
func NewGetOrdersQuery(scope access.Scope, status order.Status) (GetOrdersQuery, error) {
	if err := scope.Validate(); err != nil {
		return GetOrdersQuery{}, err
	}
	if status != order.Unknown {
		if err := status.Validate(); err != nil {
			return GetOrdersQuery{}, err
		}
	}

	return GetOrdersQuery{
		scope:  scope,
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Scope returns the caller's branch scope.
func (q GetOrdersQuery) Scope() access.Scope {
	return q.scope
}

// Status returns the status filter, or order.Unknown when unfiltered.
func (q GetOrdersQuery) Status() order.Status {
	return q.status
}

// GetOrdersQueryResponse is the order listing read model. Statuses and types
// are carried as their wire strings; the admin screens render them directly.
type GetOrdersQueryResponse struct {
	ID                  string
	Type                string
	PaymentMethod       string
	Status              string
	BranchIDs           []string
	RiderID             string
	AutoAssignStartedAt *time.Time
	IsExchange          bool
	TotalAmount         int64
	CreatedAt           time.Time
}
