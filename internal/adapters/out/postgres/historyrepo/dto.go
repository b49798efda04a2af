// Package historyrepo stores the append-only order status trail.
package historyrepo

import (
	"time"

	"footprint/internal/core/domain/model/kernel"
	"footprint/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// StatusHistoryDTO is one order_status_history row. Seq breaks ties between
// entries written in the same instant, so a trail always reads back in write order.
type StatusHistoryDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq            int64     `gorm:"autoIncrement;not null"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null;index:idx_order_status_history_order,priority:1"`
	Status         string    `gorm:"size:32;not null"`
	PreviousStatus *string   `gorm:"size:32"`
	ChangedBy      string    `gorm:"size:128;not null"`
	ChangedAt      time.Time `gorm:"not null;index:idx_order_status_history_order,priority:2"`
	Note           string    `gorm:"type:text;not null;default:''"`
}

func (StatusHistoryDTO) TableName() string {
	return "order_status_history"
}

func fromDomain(entry order.StatusHistoryEntry) StatusHistoryDTO {
	var previous *string
	if p := entry.PreviousStatus(); p != "" {
		s := string(p)
		previous = &s
	}

	return StatusHistoryDTO{
		ID:             entry.ID().Bytes(),
		OrderID:        entry.OrderID().Bytes(),
		Status:         string(entry.Status()),
		PreviousStatus: previous,
		ChangedBy:      entry.ChangedBy(),
		ChangedAt:      entry.ChangedAt(),
		Note:           entry.Note(),
	}
}

func toDomain(dto StatusHistoryDTO) (order.StatusHistoryEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.StatusHistoryEntry{}, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.StatusHistoryEntry{}, err
	}

	var previous order.FulfillmentStatus
	if dto.PreviousStatus != nil {
		previous = order.FulfillmentStatus(*dto.PreviousStatus)
	}

	return order.RestoreStatusHistoryEntry(
		id, orderID, previous, order.FulfillmentStatus(dto.Status), dto.ChangedBy, dto.ChangedAt, dto.Note,
	)
}
