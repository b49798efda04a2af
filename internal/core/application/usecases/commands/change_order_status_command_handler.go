package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"footprint/internal/core/domain/model/kernel"
	"footprint/internal/core/domain/model/order"
	"footprint/internal/core/ports"
	"footprint/internal/pkg/errs"
)

// ChangeOrderStatusResult describes an applied status change.
type ChangeOrderStatusResult struct {
	OrderID        kernel.UUID
	Status         order.FulfillmentStatus
	PreviousStatus order.FulfillmentStatus
	UpdatedAt      time.Time
}

// ChangeOrderStatusCommandHandler moves one order to a new status.
//
// The status write is the only step whose failure fails the command. The history
// entry and the status_changed event are written afterwards on a best-effort
// basis: their failures are logged and the change is still reported as applied.
type ChangeOrderStatusCommandHandler struct {
	orders  ports.OrderRepository
	history ports.StatusHistoryRepository
	events  ports.EventPublisher
	labels  order.StatusLabeler
	clock   kernel.Clock
	logger  *slog.Logger
}

func NewChangeOrderStatusCommandHandler(
	orders ports.OrderRepository,
	history ports.StatusHistoryRepository,
	events ports.EventPublisher,
	labels order.StatusLabeler,
	clock kernel.Clock,
	logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		orders:  orders,
		history: history,
		events:  events,
		labels:  labels,
		clock:   clock,
		logger:  logger.With("component", "change_order_status"),
	}
}

// Handle runs fetch, validate, conditional write, then history and event.
//
// Returns:
//   - an ObjectNotFoundError when the order does not exist
//   - an *order.IllegalTransitionError when the table has no such edge; nothing is written
//   - a ConflictError when the order changed status between read and write
//   - a PersistenceError when the store fails
func (h *ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
) (ChangeOrderStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	aggregate, err := h.orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return ChangeOrderStatusResult{}, storeError("fetch order", err)
	}

	previous, err := aggregate.ChangeStatus(cmd.Status(), h.clock.Now(), h.labels)
	if err != nil {
		return ChangeOrderStatusResult{}, err
	}

	expected := ports.ExpectedStatus{ID: aggregate.ID(), Status: previous}
	if err = h.orders.UpdateStatus(ctx, expected, aggregate.Status(), aggregate.UpdatedAt()); err != nil {
		return ChangeOrderStatusResult{}, storeError("update order status", err)
	}

	h.appendHistory(ctx, aggregate, previous, cmd)
	h.publish(ctx, ports.StatusChangedEvent{
		OrderID:        aggregate.ID(),
		Status:         aggregate.Status(),
		PreviousStatus: previous,
		ChangedBy:      cmd.ActorID(),
		ChangedAt:      aggregate.UpdatedAt(),
	})

	h.logger.InfoContext(ctx, "Order status changed",
		"order_id", aggregate.ID().String(),
		"from", string(previous),
		"to", string(aggregate.Status()),
		"actor_id", cmd.ActorID(),
	)

	return ChangeOrderStatusResult{
		OrderID:        aggregate.ID(),
		Status:         aggregate.Status(),
		PreviousStatus: previous,
		UpdatedAt:      aggregate.UpdatedAt(),
	}, nil
}

func (h *ChangeOrderStatusCommandHandler) appendHistory(
	ctx context.Context,
	aggregate *order.Order,
	previous order.FulfillmentStatus,
	cmd ChangeOrderStatusCommand,
) {
	entry, err := order.NewStatusHistoryEntry(
		aggregate.ID(), previous, aggregate.Status(), cmd.ActorID(), aggregate.UpdatedAt(), cmd.Note(),
	)
	if err == nil {
		err = h.history.Append(ctx, entry)
	}
	if err != nil {
		h.logger.WarnContext(ctx, "Status history append failed, change kept",
			"order_id", aggregate.ID().String(), "error", err)
	}
}

func (h *ChangeOrderStatusCommandHandler) publish(ctx context.Context, event ports.StatusChangedEvent) {
	if err := h.events.PublishStatusChanged(ctx, event); err != nil {
		h.logger.WarnContext(ctx, "Status change event not published",
			"order_id", event.OrderID.String(), "error", err)
	}
}

// storeError keeps caller-meaningful store errors, validation included, intact
// and hides everything else behind a PersistenceError.
func storeError(operation string, err error) error {
	switch {
	case errs.IsValidation(err),
		errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrPersistence):
		return err
	default:
		return errs.NewPersistenceError(operation, err)
	}
}
