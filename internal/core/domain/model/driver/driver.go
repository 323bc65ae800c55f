package driver

import (
	"errors"
	"strings"

	"resto/internal/core/domain/model/kernel"
	"resto/internal/pkg/errs"
	"resto/internal/pkg/guard"
)

var (
	// ErrDriverUnavailable is returned when an assignment targets a driver
	// that is offline, already carrying an order, or marked unavailable.
	ErrDriverUnavailable = errors.New("driver is not available for assignment")

	// ErrDriverIsNotConstructed is returned when using a Driver that was not
	// created via NewDriver or RestoreDriver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver or RestoreDriver")
)

// Driver is the aggregate root for a delivery rider. Its identifier is an
// operator-chosen handle rather than a generated id.
//
// Invariants (each held jointly with the matching order inside a transaction):
//
//   - a driver with a set assigned-order reference is unavailable
//   - a driver with no assigned order is available
//   - at most one order references the driver, and vice versa
type Driver struct {
	id              string
	name            string
	status          Status
	isAvailable     bool
	assignedOrderID *kernel.UUID
	branches        kernel.BranchSet
	version         int64

	guard guard.ConstructorGuard
}

// NewDriver creates an unassigned driver. A fresh driver starts available;
// presence is whatever the management screen recorded.
func NewDriver(id, name string, status Status, branches kernel.BranchSet) (*Driver, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errs.NewValueIsRequiredError("driver id")
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := branches.Validate(); err != nil {
		return nil, err
	}

	return &Driver{
		id:          strings.TrimSpace(id),
		name:        name,
		status:      status,
		isAvailable: true,
		branches:    branches,
		version:     1,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreDriver reconstructs a driver from persistence, re-validating the
// availability/assignment invariant so a corrupt record is caught at the read
// boundary. The self-healing for crash windows happens in the reconciliation
// flow, not here.
func RestoreDriver(
	id, name string,
	status Status,
	isAvailable bool,
	assignedOrderID *kernel.UUID,
	branches kernel.BranchSet,
	version int64,
) (*Driver, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errs.NewValueIsRequiredError("driver id")
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := branches.Validate(); err != nil {
		return nil, err
	}
	if assignedOrderID != nil {
		if err := assignedOrderID.Validate(); err != nil {
			return nil, err
		}
	}
	if version <= 0 {
		return nil, errs.NewVersionIsInvalidError("driver version")
	}

	var orderRef *kernel.UUID
	if assignedOrderID != nil {
		ref := *assignedOrderID
		orderRef = &ref
	}

	return &Driver{
		id:              strings.TrimSpace(id),
		name:            name,
		status:          status,
		isAvailable:     isAvailable,
		assignedOrderID: orderRef,
		branches:        branches,
		version:         version,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the driver was created via NewDriver or RestoreDriver.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// ID returns the driver's handle.
func (d *Driver) ID() string {
	return d.id
}

// Name returns the driver's display name.
func (d *Driver) Name() string {
	return d.name
}

// Status returns the coarse presence indicator.
func (d *Driver) Status() Status {
	return d.status
}

// IsAvailable returns the authoritative availability flag.
func (d *Driver) IsAvailable() bool {
	return d.isAvailable
}

// AssignedOrderID returns the order the driver currently carries, or nil.
func (d *Driver) AssignedOrderID() *kernel.UUID {
	if d.assignedOrderID == nil {
		return nil
	}
	ref := *d.assignedOrderID
	return &ref
}

// Branches returns the branch set the driver may serve.
func (d *Driver) Branches() kernel.BranchSet {
	return d.branches
}

// Version returns the optimistic-concurrency version of the record as read.
func (d *Driver) Version() int64 {
	return d.version
}

// IsAssignable reports whether the coordinator may hand the driver an order:
// available, online, and not carrying anything.
func (d *Driver) IsAssignable() bool {
	return d.isAvailable && d.status == Online && d.assignedOrderID == nil
}

// ServesBranches reports whether the driver's branch set intersects the
// order's branches.
func (d *Driver) ServesBranches(orderBranches kernel.BranchSet) bool {
	return d.branches.Intersects(orderBranches)
}

// AssignOrder hands the driver an order: availability off, back-reference
// set, presence flipped to on_delivery. Re-assigning the order the driver
// already carries is a no-op; anything else while unavailable fails with
// ErrDriverUnavailable.
func (d *Driver) AssignOrder(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if d.assignedOrderID != nil && d.assignedOrderID.IsEqual(orderID) {
		return nil
	}
	if !d.IsAssignable() {
		return ErrDriverUnavailable
	}

	ref := orderID
	d.assignedOrderID = &ref
	d.isAvailable = false
	d.status = OnDelivery
	return nil
}

// Release frees the driver after a delivery completes, an order is cancelled,
// or reconciliation finds a dangling back-reference. Idempotent: releasing an
// unassigned driver is a no-op.
func (d *Driver) Release() {
	d.assignedOrderID = nil
	d.isAvailable = true
	if d.status == OnDelivery {
		d.status = Online
	}
}
