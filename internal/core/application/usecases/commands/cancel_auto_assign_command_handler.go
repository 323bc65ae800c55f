package commands

import (
	"context"
)

// CancelAutoAssignCommandHandler clears the auto-assignment marker. An order
// still without a rider falls back to needs_rider_assignment so it shows up
// in the manual queue.
type CancelAutoAssignCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCancelAutoAssignCommandHandler creates a handler for stopping the rider search.
func NewCancelAutoAssignCommandHandler(uowFactory OrderUoWFactory) CancelAutoAssignCommandHandler {
	return CancelAutoAssignCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancel command.
func (h CancelAutoAssignCommandHandler) Handle(ctx context.Context, cmd CancelAutoAssignCommand) error {
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

	ord.CancelAutoAssign()

	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
