package commands

import (
	"context"
	"errors"

	"resto/internal/core/domain/model/driver"
	"resto/internal/pkg/errs"
)

// assignmentRetries bounds the re-reads after a version conflict before the
// handler gives up with ErrAssignmentConflict.
const assignmentRetries = 3

// ErrAssignmentConflict is returned when concurrent writers kept invalidating
// the read snapshot for the whole retry budget. The caller may simply retry;
// the usual cause is two admins assigning the same order at once, and one of
// them has already succeeded.
var ErrAssignmentConflict = errors.New("assignment conflict: concurrent updates exhausted retries")

// AssignRiderCommandHandler performs the commit step of rider assignment:
// a read-modify-write over the order and the driver in one transaction,
// guarded by both aggregates' version columns. The marker/rider exclusivity
// and the one-to-one order/driver link are enforced by the aggregates; the
// handler's job is to make the pair land atomically or not at all.
type AssignRiderCommandHandler struct {
	uowFactory UoWFactory
}

// NewAssignRiderCommandHandler creates a handler for rider assignment.
func NewAssignRiderCommandHandler(uowFactory UoWFactory) AssignRiderCommandHandler {
	return AssignRiderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the assignment. On a version conflict the whole
// read-modify-write is retried with fresh reads; after the retry budget it
// fails with ErrAssignmentConflict. Domain rejections (already assigned,
// driver unavailable, bad transition) are final and are not retried.
func (h AssignRiderCommandHandler) Handle(ctx context.Context, cmd AssignRiderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var err error
	for attempt := 0; attempt < assignmentRetries; attempt++ {
		err = h.assignOnce(ctx, cmd)
		if !errors.Is(err, errs.ErrConcurrentModification) {
			return err
		}
	}

	return ErrAssignmentConflict
}

func (h AssignRiderCommandHandler) assignOnce(ctx context.Context, cmd AssignRiderCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	driverRepo := uow.DriverRepository()

	ord, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = cmd.Scope().Authorize(ord.Branches()); err != nil {
		return err
	}

	drv, err := driverRepo.Get(ctx, cmd.RiderID())
	if err != nil {
		return err
	}

	if !drv.ServesBranches(ord.Branches()) {
		return driver.ErrDriverUnavailable
	}

	if err = ord.AssignRider(drv.ID()); err != nil {
		return err
	}

	if err = drv.AssignOrder(ord.ID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	if err = driverRepo.Update(ctx, drv); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
