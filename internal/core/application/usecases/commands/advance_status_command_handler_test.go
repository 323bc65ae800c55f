package commands_test

import (
	"testing"

	"resto/internal/core/application/usecases/commands"
	"resto/internal/core/domain/model/kernel"
	"resto/internal/core/domain/model/order"
	"resto/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdvanceStatusCommandHandler_Handle_DeliveredReleasesDriver(t *testing.T) {
	ctx := t.Context()
	ord := awaitingDeliveryOrder(t)
	require.NoError(t, ord.AssignRider("r-1"))
	require.NoError(t, ord.AdvanceTo(order.PickedUp))

	drv := onlineTestDriver(t, "r-1")
	require.NoError(t, drv.AssignOrder(ord.ID()))

	cmd, err := commands.NewAdvanceStatusCommand(ord.ID(), order.Delivered, superScope())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		orderRepo.On("Update", mock.Anything, ord).Return(nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("Get", mock.Anything, "r-1").Return(drv, nil).Once(),
		driverRepo.On("Update", mock.Anything, drv).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAdvanceStatusCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Delivered, ord.Status())
	assert.Empty(t, ord.RiderID(), "the rider reference must not outlive the delivery")
	assert.True(t, ord.HasTimestamp("riderAssigned"), "the timestamp trail keeps the assignment record")
	assert.True(t, drv.IsAvailable())
	assert.Nil(t, drv.AssignedOrderID())
	orderRepo.AssertExpectations(t)
	driverRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAdvanceStatusCommandHandler_Handle_DeliveredWithRetiredDriverHandle_StillCommits(t *testing.T) {
	ctx := t.Context()
	ord := awaitingDeliveryOrder(t)
	require.NoError(t, ord.AssignRider("r-gone"))
	require.NoError(t, ord.AdvanceTo(order.PickedUp))

	cmd, err := commands.NewAdvanceStatusCommand(ord.ID(), order.Delivered, superScope())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		orderRepo.On("Update", mock.Anything, ord).Return(nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("Get", mock.Anything, "r-gone").
			Return(nil, errs.NewObjectNotFoundError("driver", "r-gone")).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAdvanceStatusCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Delivered, ord.Status())
	uow.AssertExpectations(t)
}

func TestAdvanceStatusCommandHandler_Handle_PickupCompletionFollowsPaymentMethod(t *testing.T) {
	ctx := t.Context()

	t.Run("prepaid_pickup_is_collected", func(t *testing.T) {
		ord, err := order.NewOrder(kernel.NewUUID(), order.Pickup, order.PaymentOnline, kernel.NewBranchSet("riyadh-1"), 2000)
		require.NoError(t, err)
		require.NoError(t, ord.Accept())
		require.NoError(t, ord.AdvanceTo(order.Prepared))

		cmd, err := commands.NewAdvanceStatusCommand(ord.ID(), order.Collected, superScope())
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(orderRepo).Once(),
			orderRepo.On("Get", mock.Anything, ord.ID()).Return(ord, nil).Once(),
			orderRepo.On("Update", mock.Anything, ord).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewAdvanceStatusCommandHandler(factory)
		require.NoError(t, h.Handle(ctx, cmd))
		assert.Equal(t, order.Collected, ord.Status())
	})

	t.Run("prepaid_pickup_rejects_paid", func(t *testing.T) {
		ord, err := order.NewOrder(kernel.NewUUID(), order.Pickup, order.PaymentOnline, kernel.NewBranchSet("riyadh-1"), 2000)
		require.NoError(t, err)
		require.NoError(t, ord.Accept())
		require.NoError(t, ord.AdvanceTo(order.Prepared))

		cmd, err := commands.NewAdvanceStatusCommand(ord.ID(), order.Paid, superScope())
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(orderRepo).Once(),
			orderRepo.On("Get", mock.Anything, ord.ID()).Return(ord, nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewAdvanceStatusCommandHandler(factory)
		err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Prepared, ord.Status())
	})
}

func TestAdvanceStatusCommandHandler_Handle_InvalidEdge_RollsBack(t *testing.T) {
	ctx := t.Context()
	ord := pendingDeliveryOrder(t)

	cmd, err := commands.NewAdvanceStatusCommand(ord.ID(), order.Delivered, superScope())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAdvanceStatusCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrInvalidTransition)

	var transitionErr *order.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, order.Pending, transitionErr.From)
	uow.AssertExpectations(t)
}
