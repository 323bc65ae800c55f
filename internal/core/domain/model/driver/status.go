package driver

import (
	"fmt"

	"resto/internal/pkg/errs"
)

// Status is the coarse presence indicator of a driver, distinct from the
// authoritative availability flag the assignment coordinator reads.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Online means the driver is on shift and reachable.
	Online

	// Offline means the driver is off shift.
	Offline

	// OnDelivery means the driver is carrying an assigned order.
	OnDelivery

	// Busy means the driver is occupied outside the assignment flow.
	Busy
)

func statusStrings() map[Status]string {
	return map[Status]string{
		Online:     "online",
		Offline:    "offline",
		OnDelivery: "on_delivery",
		Busy:       "busy",
	}
}

// StatusFromString parses the literal wire representation of a driver status.
func StatusFromString(s string) (Status, error) {
	for st, str := range statusStrings() {
		if str == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("driver status", fmt.Errorf("%q is not a valid driver status", s))
}

// String returns the literal wire representation of the status.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate rejects Unknown and any out-of-range value.
func (s Status) Validate() error {
	if _, ok := statusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("driver status", fmt.Errorf("%d is not a valid driver status", s))
	}
	return nil
}
