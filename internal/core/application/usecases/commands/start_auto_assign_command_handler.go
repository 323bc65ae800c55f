package commands

import (
	"context"
)

// StartAutoAssignCommandHandler sets the auto-assignment marker on a delivery
// order. When no assignable driver currently serves the order's branches the
// order drops to needs_rider_assignment instead, and the handler reports that
// the search did not start.
type StartAutoAssignCommandHandler struct {
	uowFactory UoWFactory
}

// NewStartAutoAssignCommandHandler creates a handler for starting the rider search.
func NewStartAutoAssignCommandHandler(uowFactory UoWFactory) StartAutoAssignCommandHandler {
	return StartAutoAssignCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the start command. The boolean result reports whether the
// marker was set; false means the order fell back to manual assignment.
func (h StartAutoAssignCommandHandler) Handle(ctx context.Context, cmd StartAutoAssignCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	ord, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return false, err
	}

	if err = cmd.Scope().Authorize(ord.Branches()); err != nil {
		return false, err
	}

	candidates, err := uow.DriverRepository().GetAllAssignable(ctx, ord.Branches())
	if err != nil {
		return false, err
	}

	started := len(candidates) > 0
	if started {
		if err = ord.StartAutoAssign(); err != nil {
			return false, err
		}
	} else {
		ord.CancelAutoAssign()
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return started, nil
}
