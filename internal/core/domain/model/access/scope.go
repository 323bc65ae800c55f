// Package access implements the branch access filter: the effective branch
// scope applied to every order/driver read and write on behalf of a caller.
package access

import (
	"errors"
	"fmt"

	"resto/internal/core/domain/model/kernel"
	"resto/internal/pkg/errs"
	"resto/internal/pkg/guard"
)

var (
	// ErrAccessDenied is returned when the caller's scope excludes a record.
	ErrAccessDenied = errors.New("access denied")

	// ErrScopeIsNotConstructed is returned when using a Scope that was not
	// created via NewScope or SuperAdminScope.
	ErrScopeIsNotConstructed = errors.New("Scope must be created via NewScope or SuperAdminScope")
)

// Role classifies a caller for branch filtering.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleSuperAdmin sees and mutates every branch.
	RoleSuperAdmin

	// RoleBranchAdmin is restricted to an assigned branch set.
	RoleBranchAdmin
)

func roleStrings() map[Role]string {
	return map[Role]string{
		RoleSuperAdmin:  "super_admin",
		RoleBranchAdmin: "branch_admin",
	}
}

// RoleFromString parses the literal wire representation of a role.
func RoleFromString(s string) (Role, error) {
	for r, str := range roleStrings() {
		if str == s {
			return r, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// String returns the literal wire representation of the role.
func (r Role) String() string {
	if s, ok := roleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

// Validate rejects RoleUnknown and any out-of-range value.
func (r Role) Validate() error {
	if _, ok := roleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// Scope is the resolved branch filter for one caller. A super-admin scope is
// unrestricted; any other scope allows exactly its branch set. A branch admin
// with an empty resolved set sees and affects zero records: the scope stays
// valid but denies everything, it never widens to an unfiltered view.
type Scope struct {
	role     Role
	branches kernel.BranchSet

	guard guard.ConstructorGuard
}

// NewScope resolves the effective scope for a caller. The branch set may use
// the legacy single-branch shape upstream; callers normalize it through
// kernel.NewBranchSet before resolving.
func NewScope(role Role, branches kernel.BranchSet) (Scope, error) {
	if err := role.Validate(); err != nil {
		return Scope{}, err
	}

	return Scope{
		role:     role,
		branches: branches,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// SuperAdminScope returns the unrestricted scope.
func SuperAdminScope() Scope {
	return Scope{
		role:  RoleSuperAdmin,
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the scope was created through a constructor.
func (s Scope) Validate() error {
	return s.guard.Validate(ErrScopeIsNotConstructed)
}

// Role returns the caller's role.
func (s Scope) Role() Role {
	return s.role
}

// IsUnrestricted reports whether the scope covers every branch.
func (s Scope) IsUnrestricted() bool {
	return s.role == RoleSuperAdmin
}

// Branches returns the caller's branch set. Meaningless for an unrestricted
// scope; query adapters must check IsUnrestricted first.
func (s Scope) Branches() kernel.BranchSet {
	return s.branches
}

// Allows reports whether a record belonging to the given branches is visible
// to this scope.
func (s Scope) Allows(recordBranches kernel.BranchSet) bool {
	if s.IsUnrestricted() {
		return true
	}
	return s.branches.Intersects(recordBranches)
}

// Authorize returns ErrAccessDenied when the record's branches fall outside
// the scope.
func (s Scope) Authorize(recordBranches kernel.BranchSet) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if !s.Allows(recordBranches) {
		return ErrAccessDenied
	}
	return nil
}
