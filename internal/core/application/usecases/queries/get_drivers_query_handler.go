package queries

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetDriversQueryHandler lists riders straight from the database.
type GetDriversQueryHandler struct {
	db *gorm.DB
}

// NewGetDriversQueryHandler creates a handler for rider listing queries.
// Requires a GORM database connection for query execution.
func NewGetDriversQueryHandler(db *gorm.DB) GetDriversQueryHandler {
	return GetDriversQueryHandler{db: db}
}

// Handle executes the query. Results are sorted by handle for stable output;
// a restricted scope only matches riders serving an overlapping branch.
func (h GetDriversQueryHandler) Handle(
	ctx context.Context,
	query GetDriversQuery,
) ([]GetDriversQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlQuery := `
		SELECT
			id,
			name,
			status,
			is_available,
			assigned_order_id,
			branch_ids
		FROM drivers
	`
	args := make([]any, 0, 1)

	if !query.Scope().IsUnrestricted() {
		sqlQuery += " WHERE branch_ids && ?"
		args = append(args, pq.StringArray(query.Scope().Branches().IDs()))
	}
	sqlQuery += " ORDER BY id"

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drivers := make([]GetDriversQueryResponse, 0)
	for rows.Next() {
		var resp GetDriversQueryResponse
		var branchIDs pq.StringArray
		var assignedOrderID sql.NullString

		err = rows.Scan(
			&resp.ID,
			&resp.Name,
			&resp.Status,
			&resp.IsAvailable,
			&assignedOrderID,
			&branchIDs,
		)
		if err != nil {
			return nil, err
		}

		resp.AssignedOrderID = assignedOrderID.String
		resp.BranchIDs = branchIDs
		drivers = append(drivers, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return drivers, nil
}
