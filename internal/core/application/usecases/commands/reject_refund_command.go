package commands

import (
	"errors"

	"resto/internal/core/domain/model/access"
	"resto/internal/core/domain/model/kernel"
	"resto/internal/pkg/guard"
)

var ErrRejectRefundCommandIsNotConstructed = errors.New(
	"RejectRefundCommand must be created via NewRejectRefundCommand constructor",
)

// RejectRefundCommand declines a pending refund request. The order keeps its
// delivered status and stays billable.
type RejectRefundCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	scope   access.Scope

	guard guard.ConstructorGuard
}

// NewRejectRefundCommand creates a command to reject a refund request.
func NewRejectRefundCommand(orderID kernel.UUID, scope access.Scope) (RejectRefundCommand, error) {
	cmd := RejectRefundCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setScope(scope),
	); err != nil {
		return RejectRefundCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectRefundCommand) Validate() error {
	return c.guard.Validate(ErrRejectRefundCommandIsNotConstructed)
}

// OrderID returns the identifier of the order whose refund is rejected.
func (c RejectRefundCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Scope returns the caller's branch scope.
func (c RejectRefundCommand) Scope() access.Scope {
	return c.scope
}

func (c *RejectRefundCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RejectRefundCommand) setScope(scope access.Scope) error {
	if err := scope.Validate(); err != nil {
		return err
	}

	c.scope = scope
	return nil
}
