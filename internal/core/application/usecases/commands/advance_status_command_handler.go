package commands

import (
	"context"
	"errors"

	"resto/internal/core/domain/model/order"
	"resto/internal/pkg/errs"
)

// AdvanceStatusCommandHandler applies a forward fulfillment edge to an order.
// When a delivery order reaches delivered, the carrying driver is released in
// the same transaction so the fleet view never shows a driver stuck on a
// finished order.
type AdvanceStatusCommandHandler struct {
	uowFactory UoWFactory
}

// NewAdvanceStatusCommandHandler creates a handler for status advancement.
func NewAdvanceStatusCommandHandler(uowFactory UoWFactory) AdvanceStatusCommandHandler {
	return AdvanceStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the advance command.
func (h AdvanceStatusCommandHandler) Handle(ctx context.Context, cmd AdvanceStatusCommand) error {
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

	if err = ord.AdvanceTo(cmd.Target()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	if cmd.Target() == order.Delivered && riderID != "" {
		if err = releaseDriver(ctx, uow, riderID); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

// releaseDriver frees the driver record carrying an order that just finished.
// A missing driver record is tolerated: handles can be retired while their
// last order is still in flight.
func releaseDriver(ctx context.Context, uow UoW, riderID string) error {
	driverRepo := uow.DriverRepository()

	drv, err := driverRepo.Get(ctx, riderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	drv.Release()
	return driverRepo.Update(ctx, drv)
}
