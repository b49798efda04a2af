package queries

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"footprint/internal/core/domain/model/kernel"
	"footprint/internal/core/domain/model/order"
	"footprint/internal/pkg/errs"
	"footprint/internal/pkg/guard"
)

// DefaultStalledOrdersLimit caps one stalled-orders read.
const DefaultStalledOrdersLimit = 500

var (
	ErrGetStalledOrdersQueryIsNotConstructed = errors.New(
		"GetStalledOrdersQuery must be created via NewGetStalledOrdersQuery constructor",
	)
)

// GetStalledOrdersQuery finds orders sitting in one of the given statuses whose
// last change happened before olderThan. Final statuses are rejected, an order
// there is done rather than stuck.
type GetStalledOrdersQuery struct {
	statuses  []order.FulfillmentStatus
	olderThan time.Time
	limit     int

	guard guard.ConstructorGuard
}

func NewGetStalledOrdersQuery(statuses []order.FulfillmentStatus, olderThan time.Time) (GetStalledOrdersQuery, error) {
	if len(statuses) == 0 {
		return GetStalledOrdersQuery{}, errs.NewValueIsRequiredError("statuses")
	}
	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return GetStalledOrdersQuery{}, err
		}
		if s.IsTerminal() {
			return GetStalledOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause(
				"statuses", fmt.Errorf("%s is a final status", s))
		}
	}
	if olderThan.IsZero() {
		return GetStalledOrdersQuery{}, errs.NewValueIsRequiredError("olderThan")
	}

	return GetStalledOrdersQuery{
		statuses:  slices.Clone(statuses),
		olderThan: olderThan,
		limit:     DefaultStalledOrdersLimit,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetStalledOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetStalledOrdersQueryIsNotConstructed)
}

func (q GetStalledOrdersQuery) OlderThan() time.Time {
	return q.olderThan
}

// Statuses returns a copy of the watched statuses.
func (q GetStalledOrdersQuery) Statuses() []order.FulfillmentStatus {
	return slices.Clone(q.statuses)
}

// StalledOrder is one order that has not moved since UpdatedAt.
type StalledOrder struct {
	ID          kernel.UUID
	OrderNumber string
	Status      order.FulfillmentStatus
	UpdatedAt   time.Time
}
