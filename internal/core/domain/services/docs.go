// Package services provides domain services that orchestrate business
// operations across multiple aggregates.
//
// The package includes:
//   - RiderPicker: A domain service for selecting and assigning riders to
//     delivery orders
//
// Domain services coordinate between aggregates, implementing business logic
// that spans more than one aggregate root.
package services
