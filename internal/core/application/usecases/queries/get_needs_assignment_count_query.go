package queries

import (
	"errors"

	"resto/internal/core/domain/model/access"
	"resto/internal/pkg/guard"
)

var ErrGetNeedsAssignmentCountQueryIsNotConstructed = errors.New(
	"GetNeedsAssignmentCountQuery must be created via NewGetNeedsAssignmentCountQuery constructor",
)

// GetNeedsAssignmentCountQuery counts the delivery orders waiting for manual
// rider assignment within the caller's scope. Backs the badge the admin
// dashboard polls.
type GetNeedsAssignmentCountQuery struct {
	scope access.Scope

	guard guard.ConstructorGuard
}

// NewGetNeedsAssignmentCountQuery creates a query for the caller's
// manual-assignment backlog size.
func NewGetNeedsAssignmentCountQuery(scope access.Scope) (GetNeedsAssignmentCountQuery, error) {
	if err := scope.Validate(); err != nil {
		return GetNeedsAssignmentCountQuery{}, err
	}

	return GetNeedsAssignmentCountQuery{
		scope: scope,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetNeedsAssignmentCountQuery) Validate() error {
	return q.guard.Validate(ErrGetNeedsAssignmentCountQueryIsNotConstructed)
}

// Scope returns the caller's branch scope.
func (q GetNeedsAssignmentCountQuery) Scope() access.Scope {
	return q.scope
}
