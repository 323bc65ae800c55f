// Package driver implements the delivery driver aggregate.
//
// A driver is assignable when it is online and available; taking an order
// flips availability off and records a back-reference to the order, releasing
// does the reverse. The assignment coordinator keeps these fields consistent
// with the matching order inside one transaction.
package driver
