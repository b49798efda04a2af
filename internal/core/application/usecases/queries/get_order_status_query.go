// Package queries contains read operations for retrieving system state.
// Queries never change an order; they return read models shaped for one caller.
package queries

import (
	"errors"
	"time"

	"footprint/internal/core/domain/model/kernel"
	"footprint/internal/core/domain/model/order"
	"footprint/internal/pkg/guard"
)

var (
	ErrGetOrderStatusQueryIsNotConstructed = errors.New(
		"GetOrderStatusQuery must be created via NewGetOrderStatusQuery constructor",
	)
)

// GetOrderStatusQuery fetches the status view of one order: where it is, where it
// may go next, how it got there and when it should arrive.
//
// Example:
//
//	query, err := NewGetOrderStatusQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load order status: %w", err)
//	}
//
//	fmt.Printf("%s is %s\n", view.OrderNumber, view.StatusLabel)
type GetOrderStatusQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderStatusQuery(orderID kernel.UUID) (GetOrderStatusQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderStatusQuery{}, err
	}
	return GetOrderStatusQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatusQueryIsNotConstructed)
}

func (q GetOrderStatusQuery) OrderID() kernel.UUID {
	return q.orderID
}

// StatusOption is a status paired with its display label.
type StatusOption struct {
	Status order.FulfillmentStatus
	Label  string
}

// HistoryItem is one step of the order's status trail.
type HistoryItem struct {
	Status         order.FulfillmentStatus
	Label          string
	PreviousStatus order.FulfillmentStatus
	ChangedBy      string
	ChangedAt      time.Time
	Note           string
}

// GetOrderStatusQueryResponse is the status view of an order.
//
// EstimatedDelivery is nil for orders in a final status. Allowed is empty for
// the same orders, and Final is set.
type GetOrderStatusQueryResponse struct {
	ID                kernel.UUID
	OrderNumber       string
	Status            order.FulfillmentStatus
	StatusLabel       string
	Final             bool
	Allowed           []StatusOption
	History           []HistoryItem
	CreatedAt         time.Time
	UpdatedAt         time.Time
	EstimatedDelivery *time.Time
}
