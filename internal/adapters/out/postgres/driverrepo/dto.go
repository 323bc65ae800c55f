// Package driverrepo provides data transfer objects and mapping functions for
// driver persistence. It implements the repository pattern for the driver
// aggregate, handling the conversion between domain entities and database
// representations.
package driverrepo

import (
	"time"

	"resto/internal/core/domain/model/driver"
	"resto/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// DriverDTO represents the database structure for persisting driver
// aggregates. The primary key is the operator-chosen handle. UpdatedAt doubles
// as the idle clock: assignable drivers are served oldest-touch first.
type DriverDTO struct {
	ID              string         `gorm:"type:text;primaryKey"`
	Name            string         `gorm:"type:text"`
	Status          string         `gorm:"type:text;not null;index"`
	IsAvailable     bool           `gorm:"index"`
	AssignedOrderID *uuid.UUID     `gorm:"type:uuid;index"`
	BranchIDs       pq.StringArray `gorm:"type:text[];index:idx_drivers_branch_ids,type:gin"`
	Version         int64          `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for driver entities.
func (DriverDTO) TableName() string {
	return "drivers"
}

// fromDomain converts a driver domain aggregate to its database
// representation. The DTO carries the aggregate's read version; Update bumps
// it as part of the compare-and-swap.
func fromDomain(aggregate *driver.Driver) DriverDTO {
	var assignedOrderID *uuid.UUID
	if ref := aggregate.AssignedOrderID(); ref != nil {
		raw := ref.Bytes()
		assignedOrderID = &raw
	}

	return DriverDTO{
		ID:              aggregate.ID(),
		Name:            aggregate.Name(),
		Status:          aggregate.Status().String(),
		IsAvailable:     aggregate.IsAvailable(),
		AssignedOrderID: assignedOrderID,
		BranchIDs:       pq.StringArray(aggregate.Branches().IDs()),
		Version:         aggregate.Version(),
	}
}

// toDomain converts a database DTO to a driver domain aggregate using
// RestoreDriver, which re-validates the structural invariants.
func toDomain(dto DriverDTO) (*driver.Driver, error) {
	status, err := driver.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var assignedOrderID *kernel.UUID
	if dto.AssignedOrderID != nil {
		ref, refErr := kernel.UUIDFromBytes((*dto.AssignedOrderID)[:])
		if refErr != nil {
			return nil, refErr
		}
		assignedOrderID = &ref
	}

	return driver.RestoreDriver(
		dto.ID,
		dto.Name,
		status,
		dto.IsAvailable,
		assignedOrderID,
		kernel.NewBranchSet(dto.BranchIDs...),
		dto.Version,
	)
}
