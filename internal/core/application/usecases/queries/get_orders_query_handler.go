package queries

import (
	"context"
	"database/sql"
	"time"

	"resto/internal/core/domain/model/order"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler lists orders straight from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern;
// the branch scope and the status filter are pushed down as row predicates.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order listing queries.
// Requires a GORM database connection for query execution.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are sorted newest first; a restricted
// scope only matches orders whose branch set overlaps the caller's.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlQuery := `
		SELECT
			id,
			type,
			payment_method,
			status,
			branch_ids,
			rider_id,
			auto_assign_started_at,
			is_exchange,
			total_amount,
			created_at
		FROM orders
		WHERE 1=1
	`
	args := make([]any, 0, 2)

	if query.Status() != order.Unknown {
		sqlQuery += " AND status = ?"
		args = append(args, query.Status().String())
	}
	if !query.Scope().IsUnrestricted() {
		sqlQuery += " AND branch_ids && ?"
		args = append(args, pq.StringArray(query.Scope().Branches().IDs()))
	}
	sqlQuery += " ORDER BY created_at DESC"

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrdersQueryResponse, 0)
	for rows.Next() {
		var resp GetOrdersQueryResponse
		var branchIDs pq.StringArray
		var riderID sql.NullString
		var markerAt sql.NullTime
		var createdAt time.Time

		err = rows.Scan(
			&resp.ID,
			&resp.Type,
			&resp.PaymentMethod,
			&resp.Status,
			&branchIDs,
			&riderID,
			&markerAt,
			&resp.IsExchange,
			&resp.TotalAmount,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		resp.BranchIDs = branchIDs
		resp.RiderID = riderID.String
		if markerAt.Valid {
			at := markerAt.Time
			resp.AutoAssignStartedAt = &at
		}
		resp.CreatedAt = createdAt
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
