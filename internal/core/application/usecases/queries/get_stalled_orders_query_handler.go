package queries

import (
	"context"

	"footprint/internal/core/domain/model/kernel"
	"footprint/internal/core/domain/model/order"
	"footprint/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GetStalledOrdersQueryHandler reads stalled orders straight from the orders
// table, oldest change first.
type GetStalledOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetStalledOrdersQueryHandler(db *gorm.DB) GetStalledOrdersQueryHandler {
	return GetStalledOrdersQueryHandler{db: db}
}

func (h GetStalledOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetStalledOrdersQuery,
) ([]StalledOrder, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statuses := make([]string, len(query.statuses))
	for i, s := range query.statuses {
		statuses[i] = string(s)
	}

	stalled := make([]StalledOrder, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			status,
			updated_at
		FROM orders
		WHERE status = ANY(?)
			AND updated_at < ?
		ORDER BY updated_at, id
		LIMIT ?
	`, pq.Array(statuses), query.olderThan, query.limit).Rows()
	if err != nil {
		return nil, errs.NewPersistenceError("query stalled orders", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item StalledOrder
		var id uuid.UUID
		var status string

		if err = rows.Scan(&id, &item.OrderNumber, &status, &item.UpdatedAt); err != nil {
			return nil, errs.NewPersistenceError("scan stalled order", err)
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		item.ID = orderID
		item.Status = order.FulfillmentStatus(status)
		stalled = append(stalled, item)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewPersistenceError("read stalled orders", err)
	}

	return stalled, nil
}
