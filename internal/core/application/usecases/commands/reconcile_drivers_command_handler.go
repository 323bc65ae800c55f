package commands

import (
	"context"
	"errors"

	"resto/internal/core/domain/model/driver"
	"resto/internal/core/domain/model/kernel"
	"resto/internal/pkg/errs"
)

// ReconcileDriversCommandHandler frees drivers whose assignment link went
// stale: the order was delivered, cancelled, handed to another rider, or
// removed entirely while the driver still holds the back-reference.
type ReconcileDriversCommandHandler struct {
	uowFactory UoWFactory
}

// NewReconcileDriversCommandHandler creates a handler for reconciliation passes.
func NewReconcileDriversCommandHandler(uowFactory UoWFactory) ReconcileDriversCommandHandler {
	return ReconcileDriversCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle releases every carrying driver whose order no longer carries it.
// Each driver is handled in its own transaction; concurrent updates skip the
// driver until the next pass. Unexpected failures are joined into the
// returned error after the pass completes.
func (h ReconcileDriversCommandHandler) Handle(ctx context.Context, cmd ReconcileDriversCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	carrying, err := h.loadCarrying(ctx)
	if err != nil {
		return err
	}

	var failures []error
	for _, drv := range carrying {
		if err := h.reconcileOne(ctx, drv.ID()); err != nil {
			if errors.Is(err, errs.ErrConcurrentModification) {
				continue
			}
			failures = append(failures, err)
		}
	}

	return errors.Join(failures...)
}

func (h ReconcileDriversCommandHandler) loadCarrying(ctx context.Context) ([]*driver.Driver, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.DriverRepository().GetAllCarrying(ctx)
}

// reconcileOne re-reads the driver inside its own transaction; the listing
// snapshot may be stale by the time this driver's turn comes.
func (h ReconcileDriversCommandHandler) reconcileOne(ctx context.Context, driverID string) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()

	drv, err := driverRepo.Get(ctx, driverID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil
		}
		return err
	}

	orderID := drv.AssignedOrderID()
	if orderID == nil {
		return nil
	}

	stale, err := h.linkIsStale(ctx, uow, drv, *orderID)
	if err != nil {
		return err
	}
	if !stale {
		return nil
	}

	drv.Release()

	if err = driverRepo.Update(ctx, drv); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h ReconcileDriversCommandHandler) linkIsStale(
	ctx context.Context,
	uow UoW,
	drv *driver.Driver,
	orderID kernel.UUID,
) (bool, error) {
	ord, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return true, nil
		}
		return false, err
	}

	if ord.Status().IsTerminal() {
		return true, nil
	}

	return ord.RiderID() != drv.ID(), nil
}
