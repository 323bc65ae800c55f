package commands

import (
	"errors"

	"resto/internal/core/domain/model/access"
	"resto/internal/core/domain/model/kernel"
	"resto/internal/core/domain/model/order"
	"resto/internal/pkg/guard"
)

var ErrAdvanceStatusCommandIsNotConstructed = errors.New(
	"AdvanceStatusCommand must be created via NewAdvanceStatusCommand constructor",
)

// AdvanceStatusCommand moves an order one step along its type's fulfillment
// graph: kitchen progress, handover, and completion. Assignment, cancellation
// and refunds have their own commands because they carry side effects beyond
// a status change.
//
// Example:
//
//	cmd, err := NewAdvanceStatusCommand(orderID, order.PickedUp, scope)
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    var transitionErr *order.InvalidTransitionError
//	    if errors.As(err, &transitionErr) {
//	        // surface the rejected edge to the caller
//	    }
//	    return err
//	}
type AdvanceStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status
	scope   access.Scope

	guard guard.ConstructorGuard
}

// NewAdvanceStatusCommand creates a command to advance an order to the target
// status.
func NewAdvanceStatusCommand(orderID kernel.UUID, target order.Status, scope access.Scope) (AdvanceStatusCommand, error) {
	cmd := AdvanceStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setScope(scope),
	); err != nil {
		return AdvanceStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being advanced.
func (c AdvanceStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested status.
func (c AdvanceStatusCommand) Target() order.Status {
	return c.target
}

// Scope returns the caller's branch scope.
func (c AdvanceStatusCommand) Scope() access.Scope {
	return c.scope
}

func (c *AdvanceStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AdvanceStatusCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *AdvanceStatusCommand) setScope(scope access.Scope) error {
	if err := scope.Validate(); err != nil {
		return err
	}

	c.scope = scope
	return nil
}
