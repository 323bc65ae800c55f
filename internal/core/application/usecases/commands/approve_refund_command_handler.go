package commands

import (
	"context"
	"log/slog"

	"resto/internal/core/ports"
)

// ApproveRefundCommandHandler finalizes a refund: the order becomes refunded
// inside the transaction, and only after a successful commit is the proof
// image deleted. A failed deletion is logged and never fails the refund; the
// image store runs its own garbage collection for leftovers.
type ApproveRefundCommandHandler struct {
	uowFactory OrderUoWFactory
	imageStore ports.ImageStore
	logger     *slog.Logger
}

// NewApproveRefundCommandHandler creates a handler for refund approval.
func NewApproveRefundCommandHandler(
	uowFactory OrderUoWFactory,
	imageStore ports.ImageStore,
	logger *slog.Logger,
) ApproveRefundCommandHandler {
	return ApproveRefundCommandHandler{
		uowFactory: uowFactory,
		imageStore: imageStore,
		logger:     logger,
	}
}

// Handle processes the approval.
func (h ApproveRefundCommandHandler) Handle(ctx context.Context, cmd ApproveRefundCommand) error {
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

	if err = ord.ApproveRefund(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, ord); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.cleanupProofImage(ctx, ord.ID().String(), proofImageRef)
	return nil
}

// cleanupProofImage deletes the refund proof image after the commit.
// Best-effort: a failure is logged and swallowed.
func (h ApproveRefundCommandHandler) cleanupProofImage(ctx context.Context, orderID, ref string) {
	if ref == "" {
		return
	}

	if err := h.imageStore.Delete(ctx, ref); err != nil {
		h.logger.Warn("failed to delete refund proof image",
			"order_id", orderID,
			"image_ref", ref,
			"error", err,
		)
	}
}
