package commands_test

import (
	"context"
	"testing"
	"time"

	"resto/internal/core/application/usecases/commands"
	"resto/internal/core/domain/model/access"
	"resto/internal/core/domain/model/driver"
	"resto/internal/core/domain/model/kernel"
	"resto/internal/core/domain/model/order"
	"resto/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllAwaitingAssignment(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllAssignedToRider(ctx context.Context, riderID string) ([]*order.Order, error) {
	args := m.Called(ctx, riderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Update(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id string) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetAllAssignable(ctx context.Context, branches kernel.BranchSet) ([]*driver.Driver, error) {
	args := m.Called(ctx, branches)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetAllCarrying(ctx context.Context) ([]*driver.Driver, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*driver.Driver), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockImageStore struct{ mock.Mock }

func (m *MockImageStore) Delete(ctx context.Context, ref string) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

// Test fixtures shared across handler tests.

func superScope() access.Scope {
	return access.SuperAdminScope()
}

func branchScope(t *testing.T, ids ...string) access.Scope {
	t.Helper()
	scope, err := access.NewScope(access.RoleBranchAdmin, kernel.NewBranchSet(ids...))
	require.NoError(t, err)
	return scope
}

func pendingDeliveryOrder(t *testing.T, branches ...string) *order.Order {
	t.Helper()
	if len(branches) == 0 {
		branches = []string{"riyadh-1"}
	}
	ord, err := order.NewOrder(kernel.NewUUID(), order.Delivery, order.PaymentOnline, kernel.NewBranchSet(branches...), 4500)
	require.NoError(t, err)
	return ord
}

func awaitingDeliveryOrder(t *testing.T, branches ...string) *order.Order {
	t.Helper()
	ord := pendingDeliveryOrder(t, branches...)
	require.NoError(t, ord.Accept())
	require.NoError(t, ord.StartAutoAssign())
	return ord
}

func deliveredDeliveryOrder(t *testing.T) *order.Order {
	t.Helper()
	ord := awaitingDeliveryOrder(t)
	require.NoError(t, ord.AssignRider("r-1"))
	require.NoError(t, ord.AdvanceTo(order.PickedUp))
	require.NoError(t, ord.AdvanceTo(order.Delivered))
	return ord
}

func onlineTestDriver(t *testing.T, id string, branches ...string) *driver.Driver {
	t.Helper()
	if len(branches) == 0 {
		branches = []string{"riyadh-1"}
	}
	d, err := driver.NewDriver(id, "Rider "+id, driver.Online, kernel.NewBranchSet(branches...))
	require.NoError(t, err)
	return d
}
