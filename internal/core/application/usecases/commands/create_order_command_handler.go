package commands

import (
	"context"

	"footprint/internal/core/domain/model/kernel"
	"footprint/internal/core/domain/model/order"
	"footprint/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Creates the order in pending status together with its first history entry.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, kernel.SystemClock{})
//	cmd, _ := NewCreateOrderCommand(kernel.NewUUID(), "FP-10234", "checkout")
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, clock kernel.Clock) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle processes the order creation command.
// The order row and its initial history entry are written in one transaction:
// either both exist afterwards or neither does.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := order.NewOrder(cmd.OrderID(), cmd.OrderNumber(), h.clock.Now())
	if err != nil {
		return err
	}

	initial, err := order.NewInitialHistoryEntry(aggregate, cmd.ActorID())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return errs.NewPersistenceError("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return storeError("add order", err)
	}

	if err = uow.StatusHistoryRepository().Append(ctx, initial); err != nil {
		return storeError("append initial history", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return errs.NewPersistenceError("commit transaction", err)
	}

	return nil
}
