package commands

import (
	"errors"

	"resto/internal/core/domain/model/access"
	"resto/internal/core/domain/model/kernel"
	"resto/internal/pkg/guard"
)

var ErrApproveRefundCommandIsNotConstructed = errors.New(
	"ApproveRefundCommand must be created via NewApproveRefundCommand constructor",
)

// ApproveRefundCommand accepts a pending refund request on a delivered order.
// The order moves to refunded and out of billable revenue; the proof image is
// cleaned up best-effort after the transaction commits.
type ApproveRefundCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	scope   access.Scope

	guard guard.ConstructorGuard
}

// NewApproveRefundCommand creates a command to approve a refund request.
func NewApproveRefundCommand(orderID kernel.UUID, scope access.Scope) (ApproveRefundCommand, error) {
	cmd := ApproveRefundCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setScope(scope),
	); err != nil {
		return ApproveRefundCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveRefundCommand) Validate() error {
	return c.guard.Validate(ErrApproveRefundCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being refunded.
func (c ApproveRefundCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Scope returns the caller's branch scope.
func (c ApproveRefundCommand) Scope() access.Scope {
	return c.scope
}

func (c *ApproveRefundCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ApproveRefundCommand) setScope(scope access.Scope) error {
	if err := scope.Validate(); err != nil {
		return err
	}

	c.scope = scope
	return nil
}
