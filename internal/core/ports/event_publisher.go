package ports

import (
	"context"
	"time"

	"footprint/internal/core/domain/model/kernel"
	"footprint/internal/core/domain/model/order"
)

// StatusChangedEvent is announced after a status write has been committed.
type StatusChangedEvent struct {
	OrderID        kernel.UUID
	Status         order.FulfillmentStatus
	PreviousStatus order.FulfillmentStatus
	ChangedBy      string
	ChangedAt      time.Time
}

// EventPublisher announces domain events to other services (customer emails,
// carrier booking). Delivery is at most once; callers treat failures as advisory.
type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, events ...StatusChangedEvent) error
}
