package http

import (
	"context"
	"log/slog"
	"net/http"

	"footprint/internal/core/application/usecases/commands"
	"footprint/internal/core/application/usecases/queries"
	"footprint/internal/core/domain/model/kernel"
	"footprint/internal/core/domain/model/order"
	"footprint/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// StorefrontActor is recorded as the author of orders placed without an operator.
const StorefrontActor = "storefront"

type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
}

type ChangeOrderStatusHandler interface {
	Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (commands.ChangeOrderStatusResult, error)
}

type BulkChangeOrderStatusHandler interface {
	Handle(
		ctx context.Context,
		cmd commands.BulkChangeOrderStatusCommand,
	) (commands.BulkChangeOrderStatusResult, error)
}

type GeneratePrintFileHandler interface {
	Handle(ctx context.Context, cmd commands.GeneratePrintFileCommand) (commands.GeneratePrintFileResult, error)
}

type GetOrderStatusHandler interface {
	Handle(ctx context.Context, query queries.GetOrderStatusQuery) (queries.GetOrderStatusQueryResponse, error)
}

// Server translates HTTP requests into commands and queries and their results
// back into JSON.
type Server struct {
	// Command handlers
	createOrderHandler       CreateOrderHandler
	changeStatusHandler      ChangeOrderStatusHandler
	bulkChangeStatusHandler  BulkChangeOrderStatusHandler
	generatePrintFileHandler GeneratePrintFileHandler

	// Query handlers
	getOrderStatusHandler GetOrderStatusHandler

	logger *slog.Logger
}

func NewServer(
	createOrderHandler CreateOrderHandler,
	changeStatusHandler ChangeOrderStatusHandler,
	bulkChangeStatusHandler BulkChangeOrderStatusHandler,
	generatePrintFileHandler GeneratePrintFileHandler,
	getOrderStatusHandler GetOrderStatusHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		changeStatusHandler:      changeStatusHandler,
		bulkChangeStatusHandler:  bulkChangeStatusHandler,
		generatePrintFileHandler: generatePrintFileHandler,
		getOrderStatusHandler:    getOrderStatusHandler,
		logger:                   logger.With("component", "http"),
	}
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var body createOrderRequest
	if err := c.Bind(&body); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	actor := c.Request().Header.Get(HeaderActorID)
	if actor == "" {
		actor = StorefrontActor
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, body.OrderNumber, actor)
	if err != nil {
		return s.fail(c, err)
	}

	if err = s.createOrderHandler.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, createOrderResponse{
		ID:          orderID.String(),
		OrderNumber: cmd.OrderNumber(),
		Status:      string(order.Pending),
	})
}

// GetOrderStatus handles GET /api/orders/:id/status.
func (s *Server) GetOrderStatus(c echo.Context) error {
	orderID, err := pathOrderID(c)
	if err != nil {
		return s.fail(c, err)
	}

	query, err := queries.NewGetOrderStatusQuery(orderID)
	if err != nil {
		return s.fail(c, err)
	}

	view, err := s.getOrderStatusHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toOrderStatusResponse(view))
}

// ChangeOrderStatus handles PATCH /api/admin/orders/:id/status.
func (s *Server) ChangeOrderStatus(c echo.Context) error {
	orderID, err := pathOrderID(c)
	if err != nil {
		return s.fail(c, err)
	}

	var body changeStatusRequest
	if err = c.Bind(&body); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, body.Status, actorOf(c), body.Note)
	if err != nil {
		return s.fail(c, err)
	}

	result, err := s.changeStatusHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, changeStatusResponse{
		Success: true,
		Order: changedOrder{
			ID:        result.OrderID.String(),
			Status:    string(result.Status),
			UpdatedAt: result.UpdatedAt,
		},
	})
}

// BulkChangeOrderStatus handles POST /api/admin/orders/bulk-status. Per-order
// failures are part of a 200 response; only request-level failures are errors.
func (s *Server) BulkChangeOrderStatus(c echo.Context) error {
	var body bulkStatusRequest
	if err := c.Bind(&body); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewBulkChangeOrderStatusCommand(body.OrderIDs, body.Status, actorOf(c))
	if err != nil {
		return s.fail(c, err)
	}

	result, err := s.bulkChangeStatusHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	failures := make([]bulkFailure, len(result.Failures))
	for i, f := range result.Failures {
		failures[i] = bulkFailure{OrderID: f.OrderID, Reason: f.Reason}
	}

	return c.JSON(http.StatusOK, bulkStatusResponse{
		Success: result.SuccessCount(),
		Failed:  result.FailedCount(),
		Errors:  failures,
	})
}

// GeneratePrintFile handles POST /api/admin/orders/:id/print-file.
func (s *Server) GeneratePrintFile(c echo.Context) error {
	orderID, err := pathOrderID(c)
	if err != nil {
		return s.fail(c, err)
	}

	var body printFileRequest
	if err = c.Bind(&body); err != nil {
		return s.fail(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewGeneratePrintFileCommand(orderID, body.SourceKey, body.Size, body.Paper)
	if err != nil {
		return s.fail(c, err)
	}

	result, err := s.generatePrintFileHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, printFileResponse{
		Key:      result.Key,
		WidthPx:  result.WidthPx,
		HeightPx: result.HeightPx,
		DPI:      result.DPI,
	})
}

func pathOrderID(c echo.Context) (kernel.UUID, error) {
	var raw openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}

	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return id, nil
}

func toOrderStatusResponse(view queries.GetOrderStatusQueryResponse) orderStatusResponse {
	allowed := make([]statusOption, len(view.Allowed))
	for i, a := range view.Allowed {
		allowed[i] = statusOption{Status: string(a.Status), Label: a.Label}
	}

	history := make([]historyItem, len(view.History))
	for i, h := range view.History {
		history[i] = historyItem{
			Status:         string(h.Status),
			Label:          h.Label,
			PreviousStatus: string(h.PreviousStatus),
			ChangedBy:      h.ChangedBy,
			ChangedAt:      h.ChangedAt,
			Note:           h.Note,
		}
	}

	return orderStatusResponse{
		ID:                view.ID.String(),
		OrderNumber:       view.OrderNumber,
		Status:            string(view.Status),
		StatusLabel:       view.StatusLabel,
		Final:             view.Final,
		Allowed:           allowed,
		History:           history,
		CreatedAt:         view.CreatedAt,
		UpdatedAt:         view.UpdatedAt,
		EstimatedDelivery: view.EstimatedDelivery,
	}
}
