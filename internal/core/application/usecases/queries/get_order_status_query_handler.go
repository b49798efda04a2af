package queries

import (
	"context"
	"errors"

	"footprint/internal/core/domain/model/order"
	"footprint/internal/core/domain/services"
	"footprint/internal/core/ports"
	"footprint/internal/pkg/errs"
)

// GetOrderStatusQueryHandler builds the status view from the order, its history
// trail, the label set and the delivery calendar.
type GetOrderStatusQueryHandler struct {
	orders   ports.OrderRepository
	history  ports.StatusHistoryRepository
	labels   order.StatusLabeler
	calendar *services.DeliveryCalendar
}

func NewGetOrderStatusQueryHandler(
	orders ports.OrderRepository,
	history ports.StatusHistoryRepository,
	labels order.StatusLabeler,
	calendar *services.DeliveryCalendar,
) GetOrderStatusQueryHandler {
	if labels == nil {
		labels = order.HebrewLabels
	}
	return GetOrderStatusQueryHandler{
		orders:   orders,
		history:  history,
		labels:   labels,
		calendar: calendar,
	}
}

// Handle returns the status view. A missing order yields an ObjectNotFoundError.
// The estimate counts from the order's creation, since that is when it was placed.
func (h GetOrderStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatusQuery,
) (GetOrderStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatusQueryResponse{}, err
	}

	aggregate, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderStatusQueryResponse{}, readError("fetch order", err)
	}

	trail, err := h.history.ListByOrder(ctx, aggregate.ID())
	if err != nil {
		return GetOrderStatusQueryResponse{}, readError("fetch status history", err)
	}

	status := aggregate.Status()
	resp := GetOrderStatusQueryResponse{
		ID:          aggregate.ID(),
		OrderNumber: aggregate.OrderNumber(),
		Status:      status,
		StatusLabel: h.labels.Label(status),
		Final:       status.IsTerminal(),
		Allowed:     make([]StatusOption, 0),
		History:     make([]HistoryItem, 0, len(trail)),
		CreatedAt:   aggregate.CreatedAt(),
		UpdatedAt:   aggregate.UpdatedAt(),
	}

	for _, next := range order.AllowedTransitions(status) {
		resp.Allowed = append(resp.Allowed, StatusOption{Status: next, Label: h.labels.Label(next)})
	}

	for _, entry := range trail {
		resp.History = append(resp.History, HistoryItem{
			Status:         entry.Status(),
			Label:          h.labels.Label(entry.Status()),
			PreviousStatus: entry.PreviousStatus(),
			ChangedBy:      entry.ChangedBy(),
			ChangedAt:      entry.ChangedAt(),
			Note:           entry.Note(),
		})
	}

	if !resp.Final && h.calendar != nil {
		eta := h.calendar.EstimateDelivery(aggregate.CreatedAt())
		resp.EstimatedDelivery = &eta
	}

	return resp, nil
}

func readError(op string, err error) error {
	if errors.Is(err, errs.ErrObjectNotFound) || errors.Is(err, errs.ErrPersistence) {
		return err
	}
	return errs.NewPersistenceError(op, err)
}
