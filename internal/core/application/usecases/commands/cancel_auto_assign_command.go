package commands

import (
	"errors"

	"resto/internal/core/domain/model/access"
	"resto/internal/core/domain/model/kernel"
	"resto/internal/pkg/guard"
)

var ErrCancelAutoAssignCommandIsNotConstructed = errors.New(
	"CancelAutoAssignCommand must be created via NewCancelAutoAssignCommand constructor",
)

// CancelAutoAssignCommand stops an in-flight rider search. Idempotent at the
// domain level: cancelling an order with no marker is a no-op.
type CancelAutoAssignCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	scope   access.Scope

	guard guard.ConstructorGuard
}

// NewCancelAutoAssignCommand creates a command to stop the rider search.
func NewCancelAutoAssignCommand(orderID kernel.UUID, scope access.Scope) (CancelAutoAssignCommand, error) {
	cmd := CancelAutoAssignCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setScope(scope),
	); err != nil {
		return CancelAutoAssignCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelAutoAssignCommand) Validate() error {
	return c.guard.Validate(ErrCancelAutoAssignCommandIsNotConstructed)
}

// OrderID returns the identifier of the order whose search is being stopped.
func (c CancelAutoAssignCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Scope returns the caller's branch scope.
func (c CancelAutoAssignCommand) Scope() access.Scope {
	return c.scope
}

func (c *CancelAutoAssignCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CancelAutoAssignCommand) setScope(scope access.Scope) error {
	if err := scope.Validate(); err != nil {
		return err
	}

	c.scope = scope
	return nil
}
