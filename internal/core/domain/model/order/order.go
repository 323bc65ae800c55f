package order

import (
	"time"

	"resto/internal/core/domain/model/kernel"
	"resto/internal/pkg/errs"
	"resto/internal/pkg/guard"
)

// Order is the aggregate root for a customer order. It owns the lifecycle
// state machine and the rider bookkeeping fields; all mutation goes through
// validated methods so the invariants below always hold:
//
//   - status only moves along the edges of the per-type transition graph
//   - the auto-assignment marker and a set rider reference are mutually exclusive
//   - the timestamp map is append-only: entries are added, never overwritten
//   - a rider reference only exists on delivery orders
//
// Monetary and item fields are opaque to this core; only the total amount is
// carried so billable semantics stay observable.
type Order struct {
	id            kernel.UUID
	orderType     Type
	paymentMethod PaymentMethod
	branches      kernel.BranchSet

	status              Status
	riderID             string
	autoAssignStartedAt *time.Time
	timestamps          map[string]time.Time

	refund          *RefundRequest
	isExchange      bool
	exchangeDetails string

	cancellationReason string
	cancelledBy        string

	totalAmount int64
	version     int64

	guard guard.ConstructorGuard
}

// NewOrder creates an order in Pending status, as handed over by the intake flow.
// Pickup orders must carry a payment method because their completion label
// depends on it; other types may leave it unset.
func NewOrder(
	id kernel.UUID,
	orderType Type,
	paymentMethod PaymentMethod,
	branches kernel.BranchSet,
	totalAmount int64,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := orderType.Validate(); err != nil {
		return nil, err
	}
	if err := branches.Validate(); err != nil {
		return nil, err
	}
	if orderType == Pickup && paymentMethod == PaymentUnknown {
		return nil, errs.NewValueIsRequiredError("payment method for pickup orders")
	}

	return &Order{
		id:            id,
		orderType:     orderType,
		paymentMethod: paymentMethod,
		branches:      branches,
		status:        Pending,
		timestamps:    map[string]time.Time{"pending": time.Now().UTC()},
		totalAmount:   totalAmount,
		version:       1,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// RestoreOrderParams carries the full persisted state of an order.
type RestoreOrderParams struct {
	ID                  kernel.UUID
	Type                Type
	PaymentMethod       PaymentMethod
	Branches            kernel.BranchSet
	Status              Status
	RiderID             string
	AutoAssignStartedAt *time.Time
	Timestamps          map[string]time.Time
	Refund              *RefundRequest
	IsExchange          bool
	ExchangeDetails     string
	CancellationReason  string
	CancelledBy         string
	TotalAmount         int64
	Version             int64
}

// RestoreOrder reconstructs an order from persistence. It re-validates the
// structural invariants so a corrupt record is rejected at the read boundary
// instead of propagating.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	if err := p.ID.Validate(); err != nil {
		return nil, err
	}
	if err := p.Type.Validate(); err != nil {
		return nil, err
	}
	if err := p.Status.Validate(); err != nil {
		return nil, err
	}
	if err := p.Branches.Validate(); err != nil {
		return nil, err
	}
	if p.RiderID != "" && p.Type != Delivery {
		return nil, errs.NewValueIsInvalidError("rider reference on a non-delivery order")
	}
	if p.RiderID != "" && p.AutoAssignStartedAt != nil {
		return nil, errs.NewValueIsInvalidError("auto-assignment marker on an assigned order")
	}
	if p.Version <= 0 {
		return nil, errs.NewVersionIsInvalidError("order version")
	}

	timestamps := make(map[string]time.Time, len(p.Timestamps))
	for k, v := range p.Timestamps {
		timestamps[k] = v
	}

	return &Order{
		id:                  p.ID,
		orderType:           p.Type,
		paymentMethod:       p.PaymentMethod,
		branches:            p.Branches,
		status:              p.Status,
		riderID:             p.RiderID,
		autoAssignStartedAt: p.AutoAssignStartedAt,
		timestamps:          timestamps,
		refund:              p.Refund.clone(),
		isExchange:          p.IsExchange,
		exchangeDetails:     p.ExchangeDetails,
		cancellationReason:  p.CancellationReason,
		cancelledBy:         p.CancelledBy,
		totalAmount:         p.TotalAmount,
		version:             p.Version,
		guard:               guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the order was created via NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Type returns the fulfillment flow of the order.
func (o *Order) Type() Type {
	return o.orderType
}

// PaymentMethod returns the payment method recorded at intake.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// Branches returns the branch set the order belongs to.
func (o *Order) Branches() kernel.BranchSet {
	return o.branches
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// RiderID returns the assigned rider's handle, or "" when unassigned.
func (o *Order) RiderID() string {
	return o.riderID
}

// AutoAssignStartedAt returns the auto-assignment marker timestamp, or nil
// when no automated search is in flight.
func (o *Order) AutoAssignStartedAt() *time.Time {
	if o.autoAssignStartedAt == nil {
		return nil
	}
	at := *o.autoAssignStartedAt
	return &at
}

// Timestamps returns a copy of the append-only transition timestamp map.
func (o *Order) Timestamps() map[string]time.Time {
	out := make(map[string]time.Time, len(o.timestamps))
	for k, v := range o.timestamps {
		out[k] = v
	}
	return out
}

// HasTimestamp reports whether the named transition entry exists.
func (o *Order) HasTimestamp(event string) bool {
	_, ok := o.timestamps[event]
	return ok
}

// RefundRequest returns a copy of the attached refund request, or nil.
func (o *Order) RefundRequest() *RefundRequest {
	return o.refund.clone()
}

// IsExchange reports whether the order was converted to an exchange.
func (o *Order) IsExchange() bool {
	return o.isExchange
}

// ExchangeDetails returns the free-form exchange description.
func (o *Order) ExchangeDetails() string {
	return o.exchangeDetails
}

// CancellationReason returns the reason recorded at cancellation.
func (o *Order) CancellationReason() string {
	return o.cancellationReason
}

// CancelledBy returns who cancelled the order.
func (o *Order) CancelledBy() string {
	return o.cancelledBy
}

// TotalAmount returns the opaque order total.
func (o *Order) TotalAmount() int64 {
	return o.totalAmount
}

// Version returns the optimistic-concurrency version of the record as read.
func (o *Order) Version() int64 {
	return o.version
}

// IsBillable reports whether the order counts toward revenue: any status
// except cancelled or refunded. Exchanges stay billable because revenue is
// not reversed.
func (o *Order) IsBillable() bool {
	return o.status != Cancelled && o.status != Refunded
}

// Accept moves a pending order into preparation. For delivery orders the
// caller is expected to follow up with an auto-assignment start attempt.
func (o *Order) Accept() error {
	if o.status != Pending {
		return NewInvalidTransitionError("accept", o.status, o.orderType)
	}

	o.status = Preparing
	o.stamp(Preparing.EventName())
	return nil
}

// AdvanceTo moves the order along a forward fulfillment edge of its type's
// graph. Assignment, cancellation and refund are rejected here: they carry
// side effects and go through their dedicated methods. The delivered edge
// clears the rider reference; the caller frees the matching driver record in
// the same transaction.
func (o *Order) AdvanceTo(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	switch target {
	case RiderAssigned, Cancelled, Refunded:
		return NewInvalidTransitionError("advance to "+target.String(), o.status, o.orderType)
	}

	if !canAdvance(o.orderType, o.status, target) {
		return NewInvalidTransitionError("advance to "+target.String(), o.status, o.orderType)
	}

	if o.orderType == Pickup && o.status == Prepared {
		if target == Collected && o.paymentMethod != PaymentOnline {
			return NewInvalidTransitionError("collect an unpaid", o.status, o.orderType)
		}
		if target == Paid && o.paymentMethod != PaymentCash {
			return NewInvalidTransitionError("take payment for a prepaid", o.status, o.orderType)
		}
	}

	o.status = target
	o.stamp(target.EventName())
	if target == Delivered {
		o.ReleaseRider()
	}
	return nil
}

// StartAutoAssign sets the auto-assignment marker. Allowed while the order is
// preparing or waiting for manual assignment and holds no rider; the marker
// and a rider reference are never both set.
func (o *Order) StartAutoAssign() error {
	if o.orderType != Delivery {
		return NewInvalidTransitionError("start auto-assignment for", o.status, o.orderType)
	}
	if o.riderID != "" {
		return ErrAlreadyAssigned
	}
	if o.status != Preparing && o.status != NeedsRiderAssignment {
		return NewInvalidTransitionError("start auto-assignment for", o.status, o.orderType)
	}

	now := time.Now().UTC()
	o.autoAssignStartedAt = &now
	return nil
}

// CancelAutoAssign clears the auto-assignment marker. Idempotent: calling it
// on an order without a marker is a no-op. An unassigned order falls back to
// needs_rider_assignment so it surfaces for manual handling.
func (o *Order) CancelAutoAssign() {
	o.autoAssignStartedAt = nil
	if o.status == Preparing && o.riderID == "" && o.orderType == Delivery {
		o.status = NeedsRiderAssignment
		o.stamp(NeedsRiderAssignment.EventName())
	}
}

// AssignRider commits a rider to the order. Assigning the rider that already
// holds the order is a no-op; a different rider is rejected with
// ErrAlreadyAssigned. A manual assignment overrides an in-flight automated
// search, so the marker is cleared in the same mutation.
func (o *Order) AssignRider(riderID string) error {
	if riderID == "" {
		return errs.NewValueIsRequiredError("riderID")
	}
	if o.orderType != Delivery {
		return NewInvalidTransitionError("assign a rider to", o.status, o.orderType)
	}
	if o.riderID == riderID && o.status == RiderAssigned {
		return nil
	}
	if o.riderID != "" {
		return ErrAlreadyAssigned
	}
	if o.status != Preparing && o.status != NeedsRiderAssignment {
		return NewInvalidTransitionError("assign a rider to", o.status, o.orderType)
	}

	o.riderID = riderID
	o.status = RiderAssigned
	o.autoAssignStartedAt = nil
	o.stamp(RiderAssigned.EventName())
	return nil
}

// UnassignRider releases the rider from an assigned order and returns it to
// the manual-assignment queue. Returns the released rider's handle so the
// caller can free the matching driver record in the same transaction.
func (o *Order) UnassignRider() (string, error) {
	if o.status != RiderAssigned {
		return "", NewInvalidTransitionError("unassign the rider of", o.status, o.orderType)
	}

	released := o.riderID
	o.riderID = ""
	o.status = NeedsRiderAssignment
	o.stamp(NeedsRiderAssignment.EventName())
	return released, nil
}

// ReleaseRider clears the rider reference without changing status. The rider
// reference only lives while the status implies an active delivery
// assignment; the delivered and cancelled transitions both clear it.
func (o *Order) ReleaseRider() {
	o.riderID = ""
}

// Cancel aborts the order. Permitted from any state except delivered,
// refunded, or an already-cancelled order; the reason is required. The caller
// must release any assigned driver in the same transaction.
func (o *Order) Cancel(reason, cancelledBy string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("cancellation reason")
	}
	if o.status == Delivered || o.status == Refunded || o.status == Cancelled {
		return NewInvalidTransitionError("cancel", o.status, o.orderType)
	}

	o.status = Cancelled
	o.cancellationReason = reason
	o.cancelledBy = cancelledBy
	o.riderID = ""
	o.autoAssignStartedAt = nil
	o.stamp(Cancelled.EventName())
	return nil
}

// RequestRefund attaches a pending refund request to a delivered order.
func (o *Order) RequestRefund(reason, proofImageRef string) error {
	if o.status != Delivered {
		return NewInvalidTransitionError("request a refund for", o.status, o.orderType)
	}
	if o.refund.IsPending() {
		return errs.NewValueIsInvalidError("order already has a pending refund request")
	}

	refund, err := NewRefundRequest(reason, proofImageRef)
	if err != nil {
		return err
	}
	o.refund = refund
	return nil
}

// ApproveRefund accepts a pending refund request and moves the order to
// refunded. Proof-image cleanup is the caller's concern and must stay outside
// the status transaction.
func (o *Order) ApproveRefund() error {
	if o.status != Delivered || !o.refund.IsPending() {
		return NewInvalidTransitionError("approve a refund for", o.status, o.orderType)
	}

	now := time.Now().UTC()
	o.status = Refunded
	o.refund.Status = RefundAccepted
	o.refund.AdminActionAt = &now
	o.stamp(Refunded.EventName())
	return nil
}

// RejectRefund declines a pending refund request; the order keeps its status.
func (o *Order) RejectRefund() error {
	if o.status != Delivered || !o.refund.IsPending() {
		return NewInvalidTransitionError("reject a refund for", o.status, o.orderType)
	}

	now := time.Now().UTC()
	o.refund.Status = RefundRejected
	o.refund.AdminActionAt = &now
	return nil
}

// RequestExchange resolves a pending refund request as an exchange: the order
// returns to preparation instead of being refunded, and revenue is not
// reversed.
func (o *Order) RequestExchange(details string) error {
	if details == "" {
		return errs.NewValueIsRequiredError("exchange details")
	}
	if o.status != Delivered || !o.refund.IsPending() {
		return NewInvalidTransitionError("exchange", o.status, o.orderType)
	}

	now := time.Now().UTC()
	o.refund.Status = RefundAccepted
	o.refund.AdminActionAt = &now
	o.isExchange = true
	o.exchangeDetails = details
	// The original delivery is finished; the replacement starts unassigned.
	o.riderID = ""
	o.status = Preparing
	o.stamp("exchangeRequested")
	return nil
}

// stamp appends a transition timestamp. Existing entries are kept untouched:
// the map records the first time each event happened.
func (o *Order) stamp(event string) {
	if event == "" {
		return
	}
	if _, ok := o.timestamps[event]; ok {
		return
	}
	o.timestamps[event] = time.Now().UTC()
}
