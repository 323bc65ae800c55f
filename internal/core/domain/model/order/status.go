package order

import (
	"fmt"

	"resto/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// Transition graphs by order type (cancellation and refund escape edges omitted):
//
//	delivery:  pending → preparing → {needs_rider_assignment ⇄ rider_assigned} → picked_up → delivered
//	pickup:    pending → preparing → prepared → {collected | paid} → delivered
//	takeaway:  pending → preparing → prepared → collected → delivered
//	dine_in:   pending → preparing → prepared → served → paid → delivered
//
// cancelled is reachable from every non-terminal status; refunded only from
// delivered with a pending refund request. delivered, cancelled and refunded
// are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status set by the intake flow.
	Pending

	// Preparing means the kitchen accepted the order.
	Preparing

	// NeedsRiderAssignment surfaces a delivery order waiting for manual
	// rider assignment.
	NeedsRiderAssignment

	// RiderAssigned means a rider holds the order.
	RiderAssigned

	// PickedUp means the rider collected the order from the branch.
	PickedUp

	// Prepared means a non-delivery order is ready for handover.
	Prepared

	// Served means a dine-in order reached the table.
	Served

	// Collected means a prepaid pickup or takeaway order was handed over.
	Collected

	// Paid means a cash order was settled at handover.
	Paid

	// Delivered is the generic fulfilled/closed terminal status for all types.
	Delivered

	// Cancelled is the terminal status of an aborted order.
	Cancelled

	// Refunded is the terminal status after an approved refund.
	Refunded
)

// statusStrings maps statuses to the literal strings used on the wire and in storage.
func statusStrings() map[Status]string {
	return map[Status]string{
		Pending:              "pending",
		Preparing:            "preparing",
		NeedsRiderAssignment: "needs_rider_assignment",
		RiderAssigned:        "rider_assigned",
		PickedUp:             "picked_up",
		Prepared:             "prepared",
		Served:               "served",
		Collected:            "collected",
		Paid:                 "paid",
		Delivered:            "delivered",
		Cancelled:            "cancelled",
		Refunded:             "refunded",
	}
}

// eventNames maps the status entered by a transition to the timestamp entry it writes.
func eventNames() map[Status]string {
	return map[Status]string{
		Preparing:            "preparing",
		NeedsRiderAssignment: "needsRiderAssignment",
		RiderAssigned:        "riderAssigned",
		PickedUp:             "pickedUp",
		Prepared:             "prepared",
		Served:               "served",
		Collected:            "collected",
		Paid:                 "paid",
		Delivered:            "delivered",
		Cancelled:            "cancelled",
		Refunded:             "refunded",
	}
}

// StatusFromString parses the literal wire representation of a status.
func StatusFromString(s string) (Status, error) {
	for st, str := range statusStrings() {
		if str == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// String returns the literal wire representation of the status.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// EventName returns the timestamp entry name written when this status is entered.
func (s Status) EventName() string {
	if name, ok := eventNames()[s]; ok {
		return name
	}
	return ""
}

// Validate rejects Unknown and any out-of-range value.
func (s Status) Validate() error {
	if _, ok := statusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no further fulfillment transition is possible
// except the cancel/refund escape edges.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Refunded
}

// fulfillmentEdges holds the forward transition graph per order type.
// Assignment (rider_assigned), cancellation and refund edges are handled by
// dedicated aggregate methods and are deliberately absent here.
func fulfillmentEdges() map[Type]map[Status][]Status {
	return map[Type]map[Status][]Status{
		Delivery: {
			Pending:       {Preparing},
			Preparing:     {NeedsRiderAssignment},
			RiderAssigned: {PickedUp},
			PickedUp:      {Delivered},
		},
		Pickup: {
			Pending:   {Preparing},
			Preparing: {Prepared},
			Prepared:  {Collected, Paid},
			Collected: {Delivered},
			Paid:      {Delivered},
		},
		Takeaway: {
			Pending:   {Preparing},
			Preparing: {Prepared},
			Prepared:  {Collected},
			Collected: {Delivered},
		},
		DineIn: {
			Pending:   {Preparing},
			Preparing: {Prepared},
			Prepared:  {Served},
			Served:    {Paid},
			Paid:      {Delivered},
		},
	}
}

// canAdvance reports whether the forward graph for the given order type
// contains the edge from → to.
func canAdvance(t Type, from, to Status) bool {
	edges, ok := fulfillmentEdges()[t]
	if !ok {
		return false
	}
	for _, next := range edges[from] {
		if next == to {
			return true
		}
	}
	return false
}
