package commands

import (
	"errors"

	"resto/internal/core/domain/model/access"
	"resto/internal/core/domain/model/kernel"
	"resto/internal/pkg/guard"
)

var ErrStartAutoAssignCommandIsNotConstructed = errors.New(
	"StartAutoAssignCommand must be created via NewStartAutoAssignCommand constructor",
)

// StartAutoAssignCommand asks the coordinator to begin searching for a rider
// for a delivery order. Only the marker is written here; the dispatch job
// performs the actual matching on its next tick.
type StartAutoAssignCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	scope   access.Scope

	guard guard.ConstructorGuard
}

// NewStartAutoAssignCommand creates a command to start the rider search.
func NewStartAutoAssignCommand(orderID kernel.UUID, scope access.Scope) (StartAutoAssignCommand, error) {
	cmd := StartAutoAssignCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setScope(scope),
	); err != nil {
		return StartAutoAssignCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartAutoAssignCommand) Validate() error {
	return c.guard.Validate(ErrStartAutoAssignCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to search a rider for.
func (c StartAutoAssignCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Scope returns the caller's branch scope.
func (c StartAutoAssignCommand) Scope() access.Scope {
	return c.scope
}

func (c *StartAutoAssignCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *StartAutoAssignCommand) setScope(scope access.Scope) error {
	if err := scope.Validate(); err != nil {
		return err
	}

	c.scope = scope
	return nil
}
