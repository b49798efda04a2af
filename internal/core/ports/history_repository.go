package ports

import (
	"context"

	"footprint/internal/core/domain/model/audit"
	"footprint/internal/core/domain/model/kernel"
	"footprint/internal/core/domain/model/order"
)

// StatusHistoryRepository is the append-only per-order status trail. There is no
// update or delete.
type StatusHistoryRepository interface {
	Append(ctx context.Context, entry order.StatusHistoryEntry) error

	// AppendBatch stores all entries in one write. An empty batch is a no-op.
	AppendBatch(ctx context.Context, entries []order.StatusHistoryEntry) error

	// ListByOrder returns the trail of one order, oldest first.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]order.StatusHistoryEntry, error)
}

// AuditLogRepository is the append-only log of administrative actions.
type AuditLogRepository interface {
	Append(ctx context.Context, entry audit.Entry) error
}
