package commands

import (
	"context"

	"resto/internal/core/domain/model/order"
)

// AcceptOrderCommandHandler moves a pending order into preparation.
// For delivery orders it also runs the auto-assignment start attempt: the
// marker is set when at least one assignable driver serves the order's
// branches, otherwise the order falls through to needs_rider_assignment so
// the dashboard surfaces it immediately.
type AcceptOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewAcceptOrderCommandHandler creates a handler for order acceptance.
// Requires a UoWFactory because the delivery path reads driver availability
// in the same transaction.
func NewAcceptOrderCommandHandler(uowFactory UoWFactory) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the accept command: pending -> preparing, then the
// delivery auto-assign start attempt.
func (h AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
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

	if err = ord.Accept(); err != nil {
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

// tryStartAutoAssign sets the auto-assignment marker when at least one
// assignable driver serves the order's branches; otherwise the order drops to
// needs_rider_assignment for manual handling. Shared by the accept and
// exchange flows.
func tryStartAutoAssign(ctx context.Context, uow UoW, ord *order.Order) error {
	candidates, err := uow.DriverRepository().GetAllAssignable(ctx, ord.Branches())
	if err != nil {
		return err
	}

	if len(candidates) == 0 {
		ord.CancelAutoAssign()
		return nil
	}

	return ord.StartAutoAssign()
}
