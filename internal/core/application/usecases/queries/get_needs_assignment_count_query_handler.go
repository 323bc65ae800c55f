package queries

import (
	"context"

	"resto/internal/core/domain/model/order"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetNeedsAssignmentCountQueryHandler counts waiting orders straight from the
// database. A count query instead of a listing: the dashboard polls this
// every few seconds and only renders the number.
type GetNeedsAssignmentCountQueryHandler struct {
	db *gorm.DB
}

// NewGetNeedsAssignmentCountQueryHandler creates a handler for backlog counts.
func NewGetNeedsAssignmentCountQueryHandler(db *gorm.DB) GetNeedsAssignmentCountQueryHandler {
	return GetNeedsAssignmentCountQueryHandler{db: db}
}

// Handle executes the count within the caller's branch scope.
func (h GetNeedsAssignmentCountQueryHandler) Handle(
	ctx context.Context,
	query GetNeedsAssignmentCountQuery,
) (int64, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}

	sqlQuery := "SELECT COUNT(*) FROM orders WHERE status = ?"
	args := []any{order.NeedsRiderAssignment.String()}

	if !query.Scope().IsUnrestricted() {
		sqlQuery += " AND branch_ids && ?"
		args = append(args, pq.StringArray(query.Scope().Branches().IDs()))
	}

	var count int64
	if err := h.db.WithContext(ctx).Raw(sqlQuery, args...).Scan(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
