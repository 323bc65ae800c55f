// Package order implements the order aggregate and its lifecycle state machine.
//
// An order moves along a per-type transition graph (delivery, pickup, takeaway,
// dine-in) until it reaches a terminal status. Every transition appends exactly
// one entry to the order's timestamp map and is rejected with an
// InvalidTransitionError when the current status is not a valid source.
//
// Rider bookkeeping (rider reference, auto-assignment marker) lives on the
// aggregate; keeping the matching driver record consistent is the job of the
// command handlers, which fold both writes into one transaction.
package order
