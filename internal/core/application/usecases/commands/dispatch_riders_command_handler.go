package commands

import (
	"context"
	"errors"
	"time"

	"resto/internal/core/domain/model/kernel"
	"resto/internal/core/domain/model/order"
	"resto/internal/core/domain/services"
	"resto/internal/pkg/errs"
)

// DispatchRidersCommandHandler is the write side of the automated rider
// search. Each marked order is handled in its own transaction: a lost race
// with a manual assignment or another instance only skips that order, the
// next tick picks up whatever is still marked.
type DispatchRidersCommandHandler struct {
	uowFactory UoWFactory
	picker     services.RiderPicker
}

// NewDispatchRidersCommandHandler creates a handler for dispatch passes.
func NewDispatchRidersCommandHandler(uowFactory UoWFactory, picker services.RiderPicker) DispatchRidersCommandHandler {
	return DispatchRidersCommandHandler{
		uowFactory: uowFactory,
		picker:     picker,
	}
}

// Handle processes every order carrying the auto-assignment marker. Orders
// whose marker is older than the stale cutoff are returned to the manual
// queue; the rest get a rider if one is free. Expected per-order outcomes
// (no rider free, concurrent update) are skipped silently; unexpected
// failures are joined into the returned error after the pass completes.
func (h DispatchRidersCommandHandler) Handle(ctx context.Context, cmd DispatchRidersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	orders, err := h.loadAwaiting(ctx)
	if err != nil {
		return err
	}

	staleBefore := time.Now().UTC().Add(-cmd.StaleAfter())

	var failures []error
	for _, ord := range orders {
		if err := h.dispatchOne(ctx, ord.ID(), staleBefore); err != nil {
			if errors.Is(err, services.ErrRiderNotFound) ||
				errors.Is(err, order.ErrAlreadyAssigned) ||
				errors.Is(err, errs.ErrConcurrentModification) ||
				errors.Is(err, errs.ErrObjectNotFound) {
				continue
			}
			failures = append(failures, err)
		}
	}

	return errors.Join(failures...)
}

func (h DispatchRidersCommandHandler) loadAwaiting(ctx context.Context) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().GetAllAwaitingAssignment(ctx, time.Now().UTC())
}

// dispatchOne re-reads the order inside its own transaction; the listing
// snapshot may be stale by the time this order's turn comes.
func (h DispatchRidersCommandHandler) dispatchOne(ctx context.Context, orderID kernel.UUID, staleBefore time.Time) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	ord, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	markerAt := ord.AutoAssignStartedAt()
	if markerAt == nil {
		return nil
	}

	if markerAt.Before(staleBefore) {
		ord.CancelAutoAssign()
		if err = orderRepo.Update(ctx, ord); err != nil {
			return err
		}
		return uow.Commit(ctx)
	}

	driverRepo := uow.DriverRepository()
	candidates, err := driverRepo.GetAllAssignable(ctx, ord.Branches())
	if err != nil {
		return err
	}

	chosen, err := h.picker.Pick(ord, candidates)
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	if err = driverRepo.Update(ctx, chosen); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
