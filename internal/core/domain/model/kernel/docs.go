// Package kernel provides the core domain primitives shared by the order and
// driver aggregates: validated identifiers and branch sets.
//
// Both value objects are immutable and safe for concurrent use. Zero values are
// invalid; construct them through the provided factory functions so that every
// aggregate holding them can rely on their invariants.
package kernel
