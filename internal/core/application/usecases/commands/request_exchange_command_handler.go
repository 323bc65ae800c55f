package commands

import (
	"context"

	"resto/internal/core/domain/model/order"
)

// RequestExchangeCommandHandler turns a pending refund request into an
// exchange: the refund is recorded as accepted, the order goes back to
// preparing, and a delivery order re-runs the auto-assignment start attempt
// so a rider search begins for the replacement.
type RequestExchangeCommandHandler struct {
	uowFactory UoWFactory
}

// NewRequestExchangeCommandHandler creates a handler for exchange resolution.
func NewRequestExchangeCommandHandler(uowFactory UoWFactory) RequestExchangeCommandHandler {
	return RequestExchangeCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the exchange command.
func (h RequestExchangeCommandHandler) Handle(ctx context.Context, cmd RequestExchangeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	ord, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = cmd.Scope().Authorize(ord.Branches()); err != nil {
		return err
	}

	if err = ord.RequestExchange(cmd.Details()); err != nil {
		return err
	}

	if ord.Type() == order.Delivery {
		if err = tryStartAutoAssign(ctx, uow, ord); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
