package commands_test

import (
	"testing"

	"resto/internal/core/application/usecases/commands"
	"resto/internal/core/domain/model/driver"
	"resto/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRequestExchangeCommandHandler_Handle_DeliveryRestartsRiderSearch(t *testing.T) {
	ctx := t.Context()
	ord := deliveredDeliveryOrder(t)
	require.NoError(t, ord.RequestRefund("wrong item", "media/proof-2.jpg"))

	cmd, err := commands.NewRequestExchangeCommand(ord.ID(), "replace with item #42", superScope())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	driverRepo := new(MockDriverRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, ord.ID()).Return(ord, nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("GetAllAssignable", mock.Anything, ord.Branches()).
			Return([]*driver.Driver{onlineTestDriver(t, "r-9")}, nil).Once(),
		orderRepo.On("Update", mock.Anything, ord).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRequestExchangeCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Preparing, ord.Status())
	assert.True(t, ord.IsExchange())
	assert.Equal(t, "replace with item #42", ord.ExchangeDetails())
	assert.Empty(t, ord.RiderID(), "the replacement starts unassigned")
	assert.NotNil(t, ord.AutoAssignStartedAt())
	assert.True(t, ord.IsBillable(), "exchange does not reverse revenue")
	require.NotNil(t, ord.RefundRequest())
	assert.Equal(t, order.RefundAccepted, ord.RefundRequest().Status)
	orderRepo.AssertExpectations(t)
	driverRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRequestExchangeCommandHandler_Handle_WithoutPendingRefund_IsRejected(t *testing.T) {
	ctx := t.Context()
	ord := deliveredDeliveryOrder(t)

	cmd, err := commands.NewRequestExchangeCommand(ord.ID(), "replace", superScope())
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

	h := commands.NewRequestExchangeCommandHandler(factory)
	err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrInvalidTransition)
	uow.AssertExpectations(t)
}

func TestNewRequestExchangeCommand_RequiresDetails(t *testing.T) {
	ord := deliveredDeliveryOrder(t)

	_, err := commands.NewRequestExchangeCommand(ord.ID(), "", superScope())

	require.Error(t, err)
}
