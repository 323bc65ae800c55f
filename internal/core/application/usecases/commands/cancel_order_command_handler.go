package commands

import (
	"context"
)

// CancelOrderCommandHandler aborts an order and, when a rider was already
// committed, frees the driver record in the same transaction. A cancelled
// order is excluded from billable revenue by status, so no monetary reversal
// happens here.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory UoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancel command.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	riderID := ord.RiderID()

	if err = ord.Cancel(cmd.Reason(), cmd.CancelledBy()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	if riderID != "" {
		if err = releaseDriver(ctx, uow, riderID); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
