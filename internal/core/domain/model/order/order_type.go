package order

import (
	"fmt"

	"resto/internal/pkg/errs"
)

// Type distinguishes the fulfillment flow an order follows. It is immutable
// after creation and selects which transition subgraph applies.
type Type int

const (
	// UnknownType represents an invalid or undefined order type.
	UnknownType Type = iota

	// Delivery orders are fulfilled by a rider and pass through the
	// assignment states.
	Delivery

	// Pickup orders are collected by the customer at the branch.
	Pickup

	// Takeaway orders are handed over at the counter.
	Takeaway

	// DineIn orders are served at a table and paid after serving.
	DineIn
)

// typeStrings maps types to the literal strings used on the wire and in storage.
func typeStrings() map[Type]string {
	return map[Type]string{
		Delivery: "delivery",
		Pickup:   "pickup",
		Takeaway: "takeaway",
		DineIn:   "dine_in",
	}
}

// TypeFromString parses the literal wire representation of an order type.
func TypeFromString(s string) (Type, error) {
	for t, str := range typeStrings() {
		if str == s {
			return t, nil
		}
	}
	return UnknownType, errs.NewValueIsInvalidErrorWithCause("orderType", fmt.Errorf("%q is not a valid order type", s))
}

// String returns the literal wire representation of the type.
func (t Type) String() string {
	if s, ok := typeStrings()[t]; ok {
		return s
	}
	return "unknown"
}

// Validate rejects UnknownType and any out-of-range value.
func (t Type) Validate() error {
	if _, ok := typeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("orderType", fmt.Errorf("%d is not a valid order type", t))
	}
	return nil
}

// PaymentMethod records how a pickup order is paid, fixed at intake.
// It determines the completion label after prepared: prepaid orders are
// collected, cash-on-pickup orders are paid at the counter.
type PaymentMethod int

const (
	// PaymentUnknown means no payment method was recorded. Valid for order
	// types whose flow does not branch on payment.
	PaymentUnknown PaymentMethod = iota

	// PaymentOnline marks a prepaid order.
	PaymentOnline

	// PaymentCash marks an order paid on handover.
	PaymentCash
)

func paymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		PaymentOnline: "online",
		PaymentCash:   "cash",
	}
}

// PaymentMethodFromString parses the literal wire representation of a payment
// method. The empty string maps to PaymentUnknown.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	if s == "" {
		return PaymentUnknown, nil
	}
	for m, str := range paymentMethodStrings() {
		if str == s {
			return m, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause("paymentMethod", fmt.Errorf("%q is not a valid payment method", s))
}

// String returns the literal wire representation of the payment method.
func (m PaymentMethod) String() string {
	if s, ok := paymentMethodStrings()[m]; ok {
		return s
	}
	return ""
}
