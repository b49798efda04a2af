// Package orderrepo maps order aggregates to the orders table and back.
package orderrepo

import (
	"time"

	"footprint/internal/core/domain/model/kernel"
	"footprint/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the orders row. Timestamps come from the domain clock, so GORM's
// automatic time tracking is switched off.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber string    `gorm:"size:32;not null;uniqueIndex"`
	Status      string    `gorm:"size:32;not null;index:idx_orders_status_updated_at,priority:1"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime:false;index:idx_orders_status_updated_at,priority:2"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:          aggregate.ID().Bytes(),
		OrderNumber: aggregate.OrderNumber(),
		Status:      string(aggregate.Status()),
		CreatedAt:   aggregate.CreatedAt(),
		UpdatedAt:   aggregate.UpdatedAt(),
	}
}

// toDomain rebuilds the aggregate with RestoreOrder, so a row holding an unknown
// status is reported instead of loaded.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, dto.OrderNumber, order.FulfillmentStatus(dto.Status), dto.CreatedAt, dto.UpdatedAt)
}
