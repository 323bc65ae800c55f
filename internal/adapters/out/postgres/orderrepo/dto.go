// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling the conversion between domain entities and database
// representations.
package orderrepo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"resto/internal/core/domain/model/kernel"
	"resto/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// timestampsJSON stores the append-only status timestamp map as a jsonb
// column. Keys are event names, values are UTC instants.
type timestampsJSON map[string]time.Time

// Value implements driver.Valuer.
func (t timestampsJSON) Value() (driver.Value, error) {
	if t == nil {
		t = timestampsJSON{}
	}
	return json.Marshal(t)
}

// Scan implements sql.Scanner.
func (t *timestampsJSON) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = timestampsJSON{}
		return nil
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("cannot scan %T into timestampsJSON", src)
	}
}

// OrderDTO represents the database structure for persisting order aggregates.
// Statuses and types are stored as their wire strings so the rows stay
// readable from psql and compatible with older tooling.
//
// BranchIDs is the authoritative branch column; BranchID mirrors the first
// branch for readers that predate multi-branch orders.
type OrderDTO struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Type          string         `gorm:"type:text;not null"`
	PaymentMethod string         `gorm:"type:text"`
	BranchIDs     pq.StringArray `gorm:"type:text[];index:idx_orders_branch_ids,type:gin"`
	BranchID      string         `gorm:"type:text"`

	Status              string         `gorm:"type:text;not null;index"`
	RiderID             *string        `gorm:"type:text;index"`
	AutoAssignStartedAt *time.Time     `gorm:"index"`
	Timestamps          timestampsJSON `gorm:"type:jsonb"`

	RefundStatus        *string `gorm:"type:text"`
	RefundReason        string
	RefundProofImageRef string
	RefundAdminActionAt *time.Time

	IsExchange      bool
	ExchangeDetails string

	CancellationReason string
	CancelledBy        string

	TotalAmount int64
	Version     int64 `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database
// representation. The DTO carries the aggregate's read version; Update bumps
// it as part of the compare-and-swap.
func fromDomain(aggregate *order.Order) OrderDTO {
	var riderID *string
	if id := aggregate.RiderID(); id != "" {
		riderID = &id
	}

	branchIDs := aggregate.Branches().IDs()
	legacyBranch := ""
	if len(branchIDs) > 0 {
		legacyBranch = branchIDs[0]
	}

	dto := OrderDTO{
		ID:                  aggregate.ID().Bytes(),
		Type:                aggregate.Type().String(),
		PaymentMethod:       aggregate.PaymentMethod().String(),
		BranchIDs:           pq.StringArray(branchIDs),
		BranchID:            legacyBranch,
		Status:              aggregate.Status().String(),
		RiderID:             riderID,
		AutoAssignStartedAt: aggregate.AutoAssignStartedAt(),
		Timestamps:          timestampsJSON(aggregate.Timestamps()),
		IsExchange:          aggregate.IsExchange(),
		ExchangeDetails:     aggregate.ExchangeDetails(),
		CancellationReason:  aggregate.CancellationReason(),
		CancelledBy:         aggregate.CancelledBy(),
		TotalAmount:         aggregate.TotalAmount(),
		Version:             aggregate.Version(),
	}

	if refund := aggregate.RefundRequest(); refund != nil {
		status := refund.Status.String()
		dto.RefundStatus = &status
		dto.RefundReason = refund.Reason
		dto.RefundProofImageRef = refund.ProofImageRef
		dto.RefundAdminActionAt = refund.AdminActionAt
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder, which re-validates the structural invariants.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderType, err := order.TypeFromString(dto.Type)
	if err != nil {
		return nil, err
	}

	paymentMethod, err := order.PaymentMethodFromString(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	branches := kernel.NewBranchSet(dto.BranchIDs...)
	if branches.IsEmpty() {
		branches = kernel.NewBranchSet(dto.BranchID)
	}

	riderID := ""
	if dto.RiderID != nil {
		riderID = *dto.RiderID
	}

	var refund *order.RefundRequest
	if dto.RefundStatus != nil {
		refundStatus, refundErr := order.RefundStatusFromString(*dto.RefundStatus)
		if refundErr != nil {
			return nil, refundErr
		}
		refund = &order.RefundRequest{
			Status:        refundStatus,
			Reason:        dto.RefundReason,
			ProofImageRef: dto.RefundProofImageRef,
			AdminActionAt: dto.RefundAdminActionAt,
		}
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                  id,
		Type:                orderType,
		PaymentMethod:       paymentMethod,
		Branches:            branches,
		Status:              status,
		RiderID:             riderID,
		AutoAssignStartedAt: dto.AutoAssignStartedAt,
		Timestamps:          dto.Timestamps,
		Refund:              refund,
		IsExchange:          dto.IsExchange,
		ExchangeDetails:     dto.ExchangeDetails,
		CancellationReason:  dto.CancellationReason,
		CancelledBy:         dto.CancelledBy,
		TotalAmount:         dto.TotalAmount,
		Version:             dto.Version,
	})
}
