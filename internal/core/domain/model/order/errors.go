package order

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is the sentinel for rejected status changes.
	// Callers classify with errors.Is and read details from InvalidTransitionError.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrAlreadyAssigned is returned when an assignment targets an order that
	// already references a different rider.
	ErrAlreadyAssigned = errors.New("order is already assigned to another rider")

	// ErrOrderIsNotConstructed is returned when an Order was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// InvalidTransitionError reports a status change that is not permitted from the
// order's current state. It unwraps to ErrInvalidTransition.
type InvalidTransitionError struct {
	Event string
	From  Status
	Type  Type
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given event.
func NewInvalidTransitionError(event string, from Status, orderType Type) *InvalidTransitionError {
	return &InvalidTransitionError{Event: event, From: from, Type: orderType}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s a %s order in status %s", ErrInvalidTransition, e.Event, e.Type, e.From)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
