package ports

import (
	"context"
	"time"

	"footprint/internal/core/domain/model/kernel"
	"footprint/internal/core/domain/model/order"
)

// ExpectedStatus pairs an order with the status it was read in. Conditional
// writes only apply when the stored status still matches.
type ExpectedStatus struct {
	ID     kernel.UUID
	Status order.FulfillmentStatus
}

// OrderRepository defines the persistence contract for order aggregates.
// Fulfillment only ever writes status and updated_at after creation.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id.
	// Returns an ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetMany retrieves all listed orders in one read. Missing ids are simply
	// absent from the result; order of the result is unspecified.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error)

	// UpdateStatus writes next and updatedAt for one order, but only if its stored
	// status still equals expected.Status.
	//
	// Returns:
	//   - nil when exactly one row changed
	//   - an ObjectNotFoundError when the order no longer exists
	//   - a ConflictError when the stored status differs from expected.Status
	UpdateStatus(ctx context.Context, expected ExpectedStatus, next order.FulfillmentStatus, updatedAt time.Time) error

	// UpdateStatuses applies next and updatedAt to every listed order whose stored
	// status still equals its expected status, in one write. It returns the ids
	// actually updated; listed ids missing from the result lost a race.
	UpdateStatuses(
		ctx context.Context,
		expected []ExpectedStatus,
		next order.FulfillmentStatus,
		updatedAt time.Time,
	) ([]kernel.UUID, error)
}
