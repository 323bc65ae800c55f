// Package http is the inbound adapter: it implements the generated
// ServerInterface, resolves the caller's branch scope from the JWT middleware,
// and maps domain error kinds to HTTP status codes.
package http

import (
	"errors"
	"net/http"

	"resto/internal/core/application/usecases/commands"
	"resto/internal/core/application/usecases/queries"
	"resto/internal/core/domain/model/access"
	"resto/internal/core/domain/model/driver"
	"resto/internal/core/domain/model/kernel"
	"resto/internal/core/domain/model/order"
	"resto/internal/generated/servers"
	"resto/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	acceptOrderHandler      commands.AcceptOrderCommandHandler
	advanceStatusHandler    commands.AdvanceStatusCommandHandler
	cancelOrderHandler      commands.CancelOrderCommandHandler
	startAutoAssignHandler  commands.StartAutoAssignCommandHandler
	cancelAutoAssignHandler commands.CancelAutoAssignCommandHandler
	assignRiderHandler      commands.AssignRiderCommandHandler
	approveRefundHandler    commands.ApproveRefundCommandHandler
	rejectRefundHandler     commands.RejectRefundCommandHandler
	requestExchangeHandler  commands.RequestExchangeCommandHandler

	// Query handlers
	getOrdersHandler               queries.GetOrdersQueryHandler
	getDriversHandler              queries.GetDriversQueryHandler
	getNeedsAssignmentCountHandler queries.GetNeedsAssignmentCountQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	acceptOrderHandler commands.AcceptOrderCommandHandler,
	advanceStatusHandler commands.AdvanceStatusCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	startAutoAssignHandler commands.StartAutoAssignCommandHandler,
	cancelAutoAssignHandler commands.CancelAutoAssignCommandHandler,
	assignRiderHandler commands.AssignRiderCommandHandler,
	approveRefundHandler commands.ApproveRefundCommandHandler,
	rejectRefundHandler commands.RejectRefundCommandHandler,
	requestExchangeHandler commands.RequestExchangeCommandHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getDriversHandler queries.GetDriversQueryHandler,
	getNeedsAssignmentCountHandler queries.GetNeedsAssignmentCountQueryHandler,
) *Server {
	return &Server{
		acceptOrderHandler:             acceptOrderHandler,
		advanceStatusHandler:           advanceStatusHandler,
		cancelOrderHandler:             cancelOrderHandler,
		startAutoAssignHandler:         startAutoAssignHandler,
		cancelAutoAssignHandler:        cancelAutoAssignHandler,
		assignRiderHandler:             assignRiderHandler,
		approveRefundHandler:           approveRefundHandler,
		rejectRefundHandler:            rejectRefundHandler,
		requestExchangeHandler:         requestExchangeHandler,
		getOrdersHandler:               getOrdersHandler,
		getDriversHandler:              getDriversHandler,
		getNeedsAssignmentCountHandler: getNeedsAssignmentCountHandler,
	}
}

// GetOrders handles GET /api/v1/orders - lists the caller's visible orders.
func (s *Server) GetOrders(ctx echo.Context, params servers.GetOrdersParams) error {
	scope, err := ScopeFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusUnauthorized, err)
	}

	statusFilter := order.Unknown
	if params.Status != nil {
		statusFilter, err = order.StatusFromString(*params.Status)
		if err != nil {
			return writeError(ctx, http.StatusBadRequest, err)
		}
	}

	query, err := queries.NewGetOrdersQuery(scope, statusFilter)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err)
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	response := make([]servers.Order, 0, len(orders))
	for _, o := range orders {
		id, parseErr := uuid.Parse(o.ID)
		if parseErr != nil {
			return writeError(ctx, http.StatusInternalServerError, parseErr)
		}

		resp := servers.Order{
			Id:                  id,
			Type:                o.Type,
			Status:              o.Status,
			BranchIds:           o.BranchIDs,
			IsExchange:          o.IsExchange,
			TotalAmount:         o.TotalAmount,
			CreatedAt:           o.CreatedAt,
			AutoAssignStartedAt: o.AutoAssignStartedAt,
		}
		if o.PaymentMethod != "" {
			pm := o.PaymentMethod
			resp.PaymentMethod = &pm
		}
		if o.RiderID != "" {
			riderID := o.RiderID
			resp.RiderId = &riderID
		}
		response = append(response, resp)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetDrivers handles GET /api/v1/drivers - lists the caller's visible riders.
func (s *Server) GetDrivers(ctx echo.Context) error {
	scope, err := ScopeFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusUnauthorized, err)
	}

	query, err := queries.NewGetDriversQuery(scope)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err)
	}

	drivers, err := s.getDriversHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	response := make([]servers.Driver, 0, len(drivers))
	for _, d := range drivers {
		resp := servers.Driver{
			Id:          d.ID,
			Name:        d.Name,
			Status:      servers.DriverStatus(d.Status),
			IsAvailable: d.IsAvailable,
			BranchIds:   d.BranchIDs,
		}
		if d.AssignedOrderID != "" {
			orderID := d.AssignedOrderID
			resp.AssignedOrderId = &orderID
		}
		response = append(response, resp)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetNeedsAssignmentCount handles GET /api/v1/orders/needs-assignment/count.
func (s *Server) GetNeedsAssignmentCount(ctx echo.Context) error {
	scope, err := ScopeFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusUnauthorized, err)
	}

	query, err := queries.NewGetNeedsAssignmentCountQuery(scope)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err)
	}

	count, err := s.getNeedsAssignmentCountHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.NeedsAssignmentCount{Count: count})
}

// AcceptOrder handles POST /api/v1/orders/{orderId}/accept.
func (s *Server) AcceptOrder(ctx echo.Context, orderId uuid.UUID) error {
	scope, orderID, err := s.callerAndOrder(ctx, orderId)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID, scope)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err)
	}

	if err = s.acceptOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AdvanceOrderStatus handles POST /api/v1/orders/{orderId}/status.
func (s *Server) AdvanceOrderStatus(ctx echo.Context, orderId uuid.UUID) error {
	scope, orderID, err := s.callerAndOrder(ctx, orderId)
	if err != nil {
		return err
	}

	var body servers.AdvanceStatusRequest
	if err = bindAndValidate(ctx, &body); err != nil {
		return writeError(ctx, http.StatusBadRequest, err)
	}

	target, err := order.StatusFromString(body.Status)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err)
	}

	cmd, err := commands.NewAdvanceStatusCommand(orderID, target, scope)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err)
	}

	if err = s.advanceStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, orderId uuid.UUID) error {
	scope, orderID, err := s.callerAndOrder(ctx, orderId)
	if err != nil {
		return err
	}

	var body servers.CancelOrderRequest
	if err = bindAndValidate(ctx, &body); err != nil {
		return writeError(ctx, http.StatusBadRequest, err)
	}

	cancelledBy := ""
	if body.CancelledBy != nil {
		cancelledBy = *body.CancelledBy
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, body.Reason, cancelledBy, scope)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err)
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// StartAutoAssign handles POST /api/v1/orders/{orderId}/auto-assign/start.
func (s *Server) StartAutoAssign(ctx echo.Context, orderId uuid.UUID) error {
	scope, orderID, err := s.callerAndOrder(ctx, orderId)
	if err != nil {
		return err
	}

	cmd, err := commands.NewStartAutoAssignCommand(orderID, scope)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err)
	}

	started, err := s.startAutoAssignHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.AutoAssignResult{Started: started})
}

// CancelAutoAssign handles POST /api/v1/orders/{orderId}/auto-assign/cancel.
func (s *Server) CancelAutoAssign(ctx echo.Context, orderId uuid.UUID) error {
	scope, orderID, err := s.callerAndOrder(ctx, orderId)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCancelAutoAssignCommand(orderID, scope)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err)
	}

	if err = s.cancelAutoAssignHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignRider handles POST /api/v1/orders/{orderId}/assign - manual assignment.
// The admin screen renders the message directly, so assignment races report a
// Result payload instead of a bare status code.
func (s *Server) AssignRider(ctx echo.Context, orderId uuid.UUID) error {
	scope, orderID, err := s.callerAndOrder(ctx, orderId)
	if err != nil {
		return err
	}

	var body servers.AssignRiderRequest
	if err = bindAndValidate(ctx, &body); err != nil {
		return writeError(ctx, http.StatusBadRequest, err)
	}

	cmd, err := commands.NewAssignRiderCommand(orderID, body.DriverId, scope)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err)
	}

	err = s.assignRiderHandler.Handle(ctx.Request().Context(), cmd)
	switch {
	case err == nil:
		return ctx.JSON(http.StatusOK, servers.Result{
			IsSuccess: true,
			Message:   "rider assigned",
		})
	case errors.Is(err, order.ErrAlreadyAssigned):
		return ctx.JSON(http.StatusConflict, servers.Result{
			IsSuccess: false,
			Message:   "order already has a rider",
		})
	case errors.Is(err, driver.ErrDriverUnavailable):
		return ctx.JSON(http.StatusConflict, servers.Result{
			IsSuccess: false,
			Message:   "rider is not available",
		})
	case errors.Is(err, commands.ErrAssignmentConflict):
		return ctx.JSON(http.StatusConflict, servers.Result{
			IsSuccess: false,
			Message:   "assignment raced with concurrent updates, try again",
		})
	default:
		return writeDomainError(ctx, err)
	}
}

// ApproveRefund handles POST /api/v1/orders/{orderId}/refund/approve.
func (s *Server) ApproveRefund(ctx echo.Context, orderId uuid.UUID) error {
	scope, orderID, err := s.callerAndOrder(ctx, orderId)
	if err != nil {
		return err
	}

	cmd, err := commands.NewApproveRefundCommand(orderID, scope)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err)
	}

	if err = s.approveRefundHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RejectRefund handles POST /api/v1/orders/{orderId}/refund/reject.
func (s *Server) RejectRefund(ctx echo.Context, orderId uuid.UUID) error {
	scope, orderID, err := s.callerAndOrder(ctx, orderId)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRejectRefundCommand(orderID, scope)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err)
	}

	if err = s.rejectRefundHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RequestExchange handles POST /api/v1/orders/{orderId}/exchange.
func (s *Server) RequestExchange(ctx echo.Context, orderId uuid.UUID) error {
	scope, orderID, err := s.callerAndOrder(ctx, orderId)
	if err != nil {
		return err
	}

	var body servers.ExchangeRequest
	if err = bindAndValidate(ctx, &body); err != nil {
		return writeError(ctx, http.StatusBadRequest, err)
	}

	cmd, err := commands.NewRequestExchangeCommand(orderID, body.Details, scope)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, err)
	}

	if err = s.requestExchangeHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// callerAndOrder resolves the caller's scope and the order identifier, writing
// the error response itself when either fails.
func (s *Server) callerAndOrder(ctx echo.Context, orderId uuid.UUID) (access.Scope, kernel.UUID, error) {
	scope, err := ScopeFromContext(ctx)
	if err != nil {
		return access.Scope{}, kernel.UUID{}, writeError(ctx, http.StatusUnauthorized, err)
	}

	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return access.Scope{}, kernel.UUID{}, writeError(ctx, http.StatusBadRequest, err)
	}

	return scope, orderID, nil
}

// bindAndValidate decodes the JSON body and runs the validator tags.
func bindAndValidate(ctx echo.Context, body any) error {
	if err := ctx.Bind(body); err != nil {
		return err
	}
	return ctx.Validate(body)
}

// writeDomainError maps domain error kinds to HTTP status codes: missing
// records 404, scope violations 403, lifecycle rejections 422, assignment
// races 409, bad input 400.
func writeDomainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return writeError(ctx, http.StatusNotFound, err)
	case errors.Is(err, access.ErrAccessDenied):
		return writeError(ctx, http.StatusForbidden, err)
	case errors.Is(err, order.ErrInvalidTransition):
		return writeError(ctx, http.StatusUnprocessableEntity, err)
	case errors.Is(err, order.ErrAlreadyAssigned),
		errors.Is(err, driver.ErrDriverUnavailable),
		errors.Is(err, commands.ErrAssignmentConflict),
		errors.Is(err, errs.ErrConcurrentModification):
		return writeError(ctx, http.StatusConflict, err)
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid):
		return writeError(ctx, http.StatusBadRequest, err)
	default:
		return writeError(ctx, http.StatusInternalServerError, err)
	}
}

func writeError(ctx echo.Context, code int, err error) error {
	return ctx.JSON(code, servers.Error{
		Code:    code,
		Message: err.Error(),
	})
}
