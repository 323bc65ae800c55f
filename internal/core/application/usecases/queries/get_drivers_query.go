package queries

import (
	"errors"

	"resto/internal/core/domain/model/access"
	"resto/internal/pkg/guard"
)

var ErrGetDriversQueryIsNotConstructed = errors.New(
	"GetDriversQuery must be created via NewGetDriversQuery constructor",
)

// GetDriversQuery retrieves the riders visible to the caller for the
// management and manual-assignment screens. A branch admin only sees riders
// whose serviceable branches overlap their scope.
//
// Example:
//
//	query, err := NewGetDriversQuery(scope)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetDriversQueryHandler(db)
//
//	drivers, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve drivers: %w", err)
//	}
//
//	for _, d := range drivers {
//	    fmt.Printf("%s (%s) available=%v\n", d.Name, d.Status, d.IsAvailable)
//	}
type GetDriversQuery struct {
	scope access.Scope

	guard guard.ConstructorGuard
}

// NewGetDriversQuery creates a query for the caller's visible riders.
func NewGetDriversQuery(scope access.Scope) (GetDriversQuery, error) {
	if err := scope.Validate(); err != nil {
		return GetDriversQuery{}, err
	}

	return GetDriversQuery{
		scope: scope,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDriversQuery) Validate() error {
	return q.guard.Validate(ErrGetDriversQueryIsNotConstructed)
}

// Scope returns the caller's branch scope.
func (q GetDriversQuery) Scope() access.Scope {
	return q.scope
}

// GetDriversQueryResponse is the rider listing read model.
type GetDriversQueryResponse struct {
	ID              string
	Name            string
	Status          string
	IsAvailable     bool
	AssignedOrderID string
	BranchIDs       []string
}
