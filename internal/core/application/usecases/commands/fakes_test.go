package commands_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"resto/internal/core/application/usecases/commands"
	"resto/internal/core/domain/model/driver"
	"resto/internal/core/domain/model/kernel"
	"resto/internal/core/domain/model/order"
	"resto/internal/core/ports"
	"resto/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory stand-in for the postgres unit of work with the
// same concurrency semantics: transactions buffer their writes and apply them
// at commit under one lock, each write compare-and-swapped on the version the
// aggregate was read with. Used by the interleaving tests, where a real
// database would hide the races behind its own serialization.
type fakeStore struct {
	mu      sync.Mutex
	orders  map[string]order.RestoreOrderParams
	drivers map[string]driverRecord
}

type driverRecord struct {
	name            string
	status          driver.Status
	isAvailable     bool
	assignedOrderID *kernel.UUID
	branches        kernel.BranchSet
	version         int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders:  make(map[string]order.RestoreOrderParams),
		drivers: make(map[string]driverRecord),
	}
}

func (s *fakeStore) SeedOrder(t *testing.T, ord *order.Order) {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[ord.ID().String()] = snapshotOrder(ord)
}

func (s *fakeStore) SeedDriver(t *testing.T, drv *driver.Driver) {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drivers[drv.ID()] = snapshotDriver(drv)
}

func (s *fakeStore) LoadOrder(t *testing.T, id kernel.UUID) *order.Order {
	t.Helper()
	s.mu.Lock()
	params, ok := s.orders[id.String()]
	s.mu.Unlock()
	require.True(t, ok, "order %s not in store", id)

	ord, err := order.RestoreOrder(params)
	require.NoError(t, err, "stored order state violates an aggregate invariant")
	return ord
}

func (s *fakeStore) LoadDriver(t *testing.T, id string) *driver.Driver {
	t.Helper()
	s.mu.Lock()
	rec, ok := s.drivers[id]
	s.mu.Unlock()
	require.True(t, ok, "driver %s not in store", id)

	drv, err := restoreDriverRecord(id, rec)
	require.NoError(t, err, "stored driver state violates an aggregate invariant")
	return drv
}

func snapshotOrder(ord *order.Order) order.RestoreOrderParams {
	params := order.RestoreOrderParams{
		ID:                  ord.ID(),
		Type:                ord.Type(),
		PaymentMethod:       ord.PaymentMethod(),
		Branches:            ord.Branches(),
		Status:              ord.Status(),
		RiderID:             ord.RiderID(),
		AutoAssignStartedAt: ord.AutoAssignStartedAt(),
		Timestamps:          ord.Timestamps(),
		Refund:              ord.RefundRequest(),
		IsExchange:          ord.IsExchange(),
		ExchangeDetails:     ord.ExchangeDetails(),
		CancellationReason:  ord.CancellationReason(),
		CancelledBy:         ord.CancelledBy(),
		TotalAmount:         ord.TotalAmount(),
		Version:             ord.Version(),
	}
	return params
}

func snapshotDriver(drv *driver.Driver) driverRecord {
	return driverRecord{
		name:            drv.Name(),
		status:          drv.Status(),
		isAvailable:     drv.IsAvailable(),
		assignedOrderID: drv.AssignedOrderID(),
		branches:        drv.Branches(),
		version:         drv.Version(),
	}
}

func restoreDriverRecord(id string, rec driverRecord) (*driver.Driver, error) {
	return driver.RestoreDriver(
		id, rec.name, rec.status, rec.isAvailable, rec.assignedOrderID, rec.branches, rec.version,
	)
}

// fakeUoW buffers aggregate writes until Commit. Reads see committed state
// only.
type fakeUoW struct {
	store *fakeStore

	stagedOrders  []*order.Order
	stagedDrivers []*driver.Driver
}

func (u *fakeUoW) Begin(_ context.Context) error { return nil }

func (u *fakeUoW) Rollback(_ context.Context) error {
	u.stagedOrders = nil
	u.stagedDrivers = nil
	return nil
}

// Commit applies all staged writes atomically. Any version mismatch fails the
// whole transaction with a concurrent modification error and nothing lands,
// matching the postgres adapter where the row-level compare-and-swap aborts
// the surrounding transaction.
func (u *fakeUoW) Commit(_ context.Context) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	for _, ord := range u.stagedOrders {
		id := ord.ID().String()
		stored, ok := u.store.orders[id]
		if !ok {
			return errs.NewObjectNotFoundError("order", id)
		}
		if stored.Version != ord.Version() {
			return errs.NewConcurrentModificationError("order", id)
		}
	}
	for _, drv := range u.stagedDrivers {
		stored, ok := u.store.drivers[drv.ID()]
		if !ok {
			return errs.NewObjectNotFoundError("driver", drv.ID())
		}
		if stored.version != drv.Version() {
			return errs.NewConcurrentModificationError("driver", drv.ID())
		}
	}

	for _, ord := range u.stagedOrders {
		params := snapshotOrder(ord)
		params.Version = ord.Version() + 1
		u.store.orders[ord.ID().String()] = params
	}
	for _, drv := range u.stagedDrivers {
		rec := snapshotDriver(drv)
		rec.version = drv.Version() + 1
		u.store.drivers[drv.ID()] = rec
	}

	u.stagedOrders = nil
	u.stagedDrivers = nil
	return nil
}

func (u *fakeUoW) OrderRepository() ports.OrderRepository {
	return &fakeOrderRepository{uow: u}
}

func (u *fakeUoW) DriverRepository() ports.DriverRepository {
	return &fakeDriverRepository{uow: u}
}

type fakeUoWFactory struct {
	store *fakeStore
}

func (f fakeUoWFactory) Create() commands.UoW {
	return &fakeUoW{store: f.store}
}

type fakeOrderUoWFactory struct {
	store *fakeStore
}

func (f fakeOrderUoWFactory) Create() commands.OrderUoW {
	return &fakeUoW{store: f.store}
}

type fakeOrderRepository struct {
	uow *fakeUoW
}

func (r *fakeOrderRepository) Add(_ context.Context, ord *order.Order) error {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()

	id := ord.ID().String()
	if _, ok := r.uow.store.orders[id]; ok {
		return errs.NewValueIsInvalidError("order " + id + " already exists")
	}
	r.uow.store.orders[id] = snapshotOrder(ord)
	return nil
}

func (r *fakeOrderRepository) Update(_ context.Context, ord *order.Order) error {
	r.uow.stagedOrders = append(r.uow.stagedOrders, ord)
	return nil
}

func (r *fakeOrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	r.uow.store.mu.Lock()
	params, ok := r.uow.store.orders[id.String()]
	r.uow.store.mu.Unlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return order.RestoreOrder(params)
}

func (r *fakeOrderRepository) GetAllAwaitingAssignment(_ context.Context, cutoff time.Time) ([]*order.Order, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()

	var out []*order.Order
	for _, params := range r.uow.store.orders {
		if params.AutoAssignStartedAt == nil || params.AutoAssignStartedAt.After(cutoff) {
			continue
		}
		ord, err := order.RestoreOrder(params)
		if err != nil {
			return nil, err
		}
		out = append(out, ord)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AutoAssignStartedAt().Before(*out[j].AutoAssignStartedAt())
	})
	return out, nil
}

func (r *fakeOrderRepository) GetAllAssignedToRider(_ context.Context, riderID string) ([]*order.Order, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()

	var out []*order.Order
	for _, params := range r.uow.store.orders {
		if params.RiderID != riderID {
			continue
		}
		if params.Status != order.RiderAssigned && params.Status != order.PickedUp {
			continue
		}
		ord, err := order.RestoreOrder(params)
		if err != nil {
			return nil, err
		}
		out = append(out, ord)
	}
	return out, nil
}

type fakeDriverRepository struct {
	uow *fakeUoW
}

func (r *fakeDriverRepository) Add(_ context.Context, drv *driver.Driver) error {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()

	if _, ok := r.uow.store.drivers[drv.ID()]; ok {
		return errs.NewValueIsInvalidError("driver " + drv.ID() + " already exists")
	}
	r.uow.store.drivers[drv.ID()] = snapshotDriver(drv)
	return nil
}

func (r *fakeDriverRepository) Update(_ context.Context, drv *driver.Driver) error {
	r.uow.stagedDrivers = append(r.uow.stagedDrivers, drv)
	return nil
}

func (r *fakeDriverRepository) Get(_ context.Context, id string) (*driver.Driver, error) {
	r.uow.store.mu.Lock()
	rec, ok := r.uow.store.drivers[id]
	r.uow.store.mu.Unlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("driver", id)
	}
	return restoreDriverRecord(id, rec)
}

func (r *fakeDriverRepository) GetAllAssignable(_ context.Context, branches kernel.BranchSet) ([]*driver.Driver, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()

	ids := make([]string, 0, len(r.uow.store.drivers))
	for id := range r.uow.store.drivers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []*driver.Driver
	for _, id := range ids {
		rec := r.uow.store.drivers[id]
		if !rec.isAvailable || rec.status != driver.Online || rec.assignedOrderID != nil {
			continue
		}
		if !rec.branches.Intersects(branches) {
			continue
		}
		drv, err := restoreDriverRecord(id, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, drv)
	}
	return out, nil
}

func (r *fakeDriverRepository) GetAllCarrying(_ context.Context) ([]*driver.Driver, error) {
	r.uow.store.mu.Lock()
	defer r.uow.store.mu.Unlock()

	var out []*driver.Driver
	for id, rec := range r.uow.store.drivers {
		if rec.assignedOrderID == nil {
			continue
		}
		drv, err := restoreDriverRecord(id, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, drv)
	}
	return out, nil
}
