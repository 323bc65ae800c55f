package commands

import (
	"errors"

	"resto/internal/core/domain/model/access"
	"resto/internal/core/domain/model/kernel"
	"resto/internal/pkg/errs"
	"resto/internal/pkg/guard"
)

var ErrRequestExchangeCommandIsNotConstructed = errors.New(
	"RequestExchangeCommand must be created via NewRequestExchangeCommand constructor",
)

// RequestExchangeCommand resolves a pending refund request as an exchange:
// instead of reversing the revenue, the kitchen re-prepares the order.
type RequestExchangeCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	details string
	scope   access.Scope

	guard guard.ConstructorGuard
}

// NewRequestExchangeCommand creates a command to resolve a refund request as
// an exchange. Details describing what to re-prepare are required.
func NewRequestExchangeCommand(orderID kernel.UUID, details string, scope access.Scope) (RequestExchangeCommand, error) {
	cmd := RequestExchangeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDetails(details),
		cmd.setScope(scope),
	); err != nil {
		return RequestExchangeCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestExchangeCommand) Validate() error {
	return c.guard.Validate(ErrRequestExchangeCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being exchanged.
func (c RequestExchangeCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Details returns the operator-supplied exchange details.
func (c RequestExchangeCommand) Details() string {
	return c.details
}

// Scope returns the caller's branch scope.
func (c RequestExchangeCommand) Scope() access.Scope {
	return c.scope
}

func (c *RequestExchangeCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RequestExchangeCommand) setDetails(details string) error {
	if details == "" {
		return errs.NewValueIsRequiredError("exchange details")
	}

	c.details = details
	return nil
}

func (c *RequestExchangeCommand) setScope(scope access.Scope) error {
	if err := scope.Validate(); err != nil {
		return err
	}

	c.scope = scope
	return nil
}
