package commands

import (
	"errors"

	"resto/internal/pkg/guard"
)

var ErrReconcileDriversCommandIsNotConstructed = errors.New(
	"ReconcileDriversCommand must be created via NewReconcileDriversCommand constructor",
)

// ReconcileDriversCommand sweeps the fleet for drivers whose back-reference
// points at an order that no longer carries them and frees those drivers.
// Issued by the reconciliation job, not by callers, so it carries no scope.
type ReconcileDriversCommand struct {
	guard guard.ConstructorGuard
}

// NewReconcileDriversCommand creates a reconciliation pass.
func NewReconcileDriversCommand() (ReconcileDriversCommand, error) {
	return ReconcileDriversCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReconcileDriversCommand) Validate() error {
	return c.guard.Validate(ErrReconcileDriversCommandIsNotConstructed)
}
