package order

import (
	"fmt"
	"time"

	"resto/internal/pkg/errs"
)

// RefundStatus tracks the admin decision on a refund request.
type RefundStatus int

const (
	// RefundUnknown represents an invalid or undefined refund status.
	RefundUnknown RefundStatus = iota

	// RefundPending means the request awaits an admin decision.
	RefundPending

	// RefundAccepted means the refund was approved (or resolved as an exchange).
	RefundAccepted

	// RefundRejected means the refund was declined; the order keeps its status.
	RefundRejected
)

func refundStatusStrings() map[RefundStatus]string {
	return map[RefundStatus]string{
		RefundPending:  "pending",
		RefundAccepted: "accepted",
		RefundRejected: "rejected",
	}
}

// RefundStatusFromString parses the literal wire representation of a refund status.
func RefundStatusFromString(s string) (RefundStatus, error) {
	for st, str := range refundStatusStrings() {
		if str == s {
			return st, nil
		}
	}
	return RefundUnknown, errs.NewValueIsInvalidErrorWithCause("refundStatus", fmt.Errorf("%q is not a valid refund status", s))
}

// String returns the literal wire representation of the refund status.
func (s RefundStatus) String() string {
	if str, ok := refundStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// RefundRequest is the customer-initiated return sub-record attached to a
// delivered order. The proof image referenced here lives outside the record
// store; its deletion is best-effort and never part of the status transaction.
type RefundRequest struct {
	Status        RefundStatus
	Reason        string
	ProofImageRef string
	AdminActionAt *time.Time
}

// NewRefundRequest creates a pending refund request. The reason is required;
// the proof image reference may be empty.
func NewRefundRequest(reason, proofImageRef string) (*RefundRequest, error) {
	if reason == "" {
		return nil, errs.NewValueIsRequiredError("refund reason")
	}
	return &RefundRequest{
		Status:        RefundPending,
		Reason:        reason,
		ProofImageRef: proofImageRef,
	}, nil
}

// IsPending reports whether the request still awaits an admin decision.
func (r *RefundRequest) IsPending() bool {
	return r != nil && r.Status == RefundPending
}

// clone returns an independent copy so accessors never leak internal state.
func (r *RefundRequest) clone() *RefundRequest {
	if r == nil {
		return nil
	}
	out := *r
	if r.AdminActionAt != nil {
		at := *r.AdminActionAt
		out.AdminActionAt = &at
	}
	return &out
}
