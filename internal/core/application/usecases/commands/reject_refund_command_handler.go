package commands

import (
	"context"
	"log/slog"

	"resto/internal/core/ports"
)

// RejectRefundCommandHandler declines a pending refund request. The proof
// image is no longer needed once a decision lands, so it is cleaned up
// best-effort here as well.
type RejectRefundCommandHandler struct {
	uowFactory OrderUoWFactory
	imageStore ports.ImageStore
	logger     *slog.Logger
}

// NewRejectRefundCommandHandler creates a handler for refund rejection.
func NewRejectRefundCommandHandler(
	uowFactory OrderUoWFactory,
	imageStore ports.ImageStore,
	logger *slog.Logger,
) RejectRefundCommandHandler {
	return RejectRefundCommandHandler{
		uowFactory: uowFactory,
		imageStore: imageStore,
		logger:     logger,
	}
}

// Handle processes the rejection.
func (h RejectRefundCommandHandler) Handle(ctx context.Context, cmd RejectRefundCommand) error {
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

	var proofImageRef string
	if refund := ord.RefundRequest(); refund != nil {
		proofImageRef = refund.ProofImageRef
	}

	if err = ord.RejectRefund(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if proofImageRef != "" {
		if err = h.imageStore.Delete(ctx, proofImageRef); err != nil {
			h.logger.Warn("failed to delete refund proof image",
				"order_id", ord.ID().String(),
				"image_ref", proofImageRef,
				"error", err,
			)
		}
	}

	return nil
}
