package commands

import (
	"errors"

	"resto/internal/core/domain/model/access"
	"resto/internal/core/domain/model/kernel"
	"resto/internal/pkg/errs"
	"resto/internal/pkg/guard"
)

var ErrAssignRiderCommandIsNotConstructed = errors.New(
	"AssignRiderCommand must be created via NewAssignRiderCommand constructor",
)

// AssignRiderCommand commits a specific rider to a delivery order. It serves
// both the manual assignment screen and the dispatch job; a manual call wins
// over an in-flight automated search because committing clears the marker.
//
// Example:
//
//	cmd, err := NewAssignRiderCommand(orderID, "r-17", scope)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrAlreadyAssigned):
//	    // another rider got there first
//	case errors.Is(err, driver.ErrDriverUnavailable):
//	    // rider went offline or picked up other work
//	case errors.Is(err, ErrAssignmentConflict):
//	    // concurrent writers exhausted the retry budget
//	}
type AssignRiderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	riderID string
	scope   access.Scope

	guard guard.ConstructorGuard
}

// NewAssignRiderCommand creates a command to assign the given rider to the
// given order.
func NewAssignRiderCommand(orderID kernel.UUID, riderID string, scope access.Scope) (AssignRiderCommand, error) {
	cmd := AssignRiderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRiderID(riderID),
		cmd.setScope(scope),
	); err != nil {
		return AssignRiderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignRiderCommand) Validate() error {
	return c.guard.Validate(ErrAssignRiderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being assigned.
func (c AssignRiderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RiderID returns the handle of the rider to commit.
func (c AssignRiderCommand) RiderID() string {
	return c.riderID
}

// Scope returns the caller's branch scope.
func (c AssignRiderCommand) Scope() access.Scope {
	return c.scope
}

func (c *AssignRiderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AssignRiderCommand) setRiderID(riderID string) error {
	if riderID == "" {
		return errs.NewValueIsRequiredError("riderID")
	}

	c.riderID = riderID
	return nil
}

func (c *AssignRiderCommand) setScope(scope access.Scope) error {
	if err := scope.Validate(); err != nil {
		return err
	}

	c.scope = scope
	return nil
}
