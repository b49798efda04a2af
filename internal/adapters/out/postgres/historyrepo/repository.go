package historyrepo

import (
	"context"

	"footprint/internal/core/domain/model/kernel"
	"footprint/internal/core/domain/model/order"
	"footprint/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStatusHistoryRepository implements StatusHistoryRepository using GORM.
// It only ever inserts and reads.
type GormStatusHistoryRepository struct {
	db *gorm.DB
}

func NewGormStatusHistoryRepository(db *gorm.DB) *GormStatusHistoryRepository {
	return &GormStatusHistoryRepository{db: db}
}

func (r *GormStatusHistoryRepository) Append(ctx context.Context, entry order.StatusHistoryEntry) error {
	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// AppendBatch inserts all entries in one statement.
func (r *GormStatusHistoryRepository) AppendBatch(ctx context.Context, entries []order.StatusHistoryEntry) error {
	if len(entries) == 0 {
		return nil
	}

	dtos := make([]StatusHistoryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, fromDomain(entry))
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

// ListByOrder returns the trail oldest first.
func (r *GormStatusHistoryRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]order.StatusHistoryEntry, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StatusHistoryDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("changed_at, seq").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]order.StatusHistoryEntry, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, errs.NewPersistenceError("decode history row", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
