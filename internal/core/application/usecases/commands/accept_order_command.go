package commands

import (
	"errors"

	"resto/internal/core/domain/model/access"
	"resto/internal/core/domain/model/kernel"
	"resto/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand represents a branch admin accepting a pending order into
// the kitchen. For delivery orders, acceptance also attempts to start
// auto-assignment so a rider search begins as soon as food is cooking.
//
// Example:
//
//	cmd, err := NewAcceptOrderCommand(orderID, scope)
//	if err != nil {
//	    return err
//	}
//	handler := NewAcceptOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to accept order: %w", err)
//	}
type AcceptOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	scope   access.Scope

	guard guard.ConstructorGuard
}

// NewAcceptOrderCommand creates a command to accept a pending order.
func NewAcceptOrderCommand(orderID kernel.UUID, scope access.Scope) (AcceptOrderCommand, error) {
	cmd := AcceptOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setScope(scope),
	); err != nil {
		return AcceptOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being accepted.
func (c AcceptOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Scope returns the caller's branch scope.
func (c AcceptOrderCommand) Scope() access.Scope {
	return c.scope
}

func (c *AcceptOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AcceptOrderCommand) setScope(scope access.Scope) error {
	if err := scope.Validate(); err != nil {
		return err
	}

	c.scope = scope
	return nil
}
