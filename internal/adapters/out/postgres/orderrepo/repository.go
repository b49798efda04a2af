package orderrepo

import (
	"context"
	"errors"
	"time"

	"footprint/internal/core/domain/model/kernel"
	"footprint/internal/core/domain/model/order"
	"footprint/internal/core/ports"
	"footprint/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order. A second order with the same id or order number is an
// AlreadyExistsError; the connection must be opened with TranslateError for that.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewAlreadyExistsErrorWithCause("order", aggregate.OrderNumber(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	o, err := toDomain(dto)
	if err != nil {
		return nil, errs.NewPersistenceError("decode order row", err)
	}
	return o, nil
}

// GetMany retrieves every listed order that exists in one query.
func (r *GormOrderRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error) {
	if len(ids) == 0 {
		return []*order.Order{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "id IN ?", raw).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, errs.NewPersistenceError("decode order row", err)
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// UpdateStatus writes the new status only while the row still holds the expected
// one. When nothing changed it looks the row up once more to tell a deleted order
// from a concurrent status change.
func (r *GormOrderRepository) UpdateStatus(
	ctx context.Context,
	expected ports.ExpectedStatus,
	next order.FulfillmentStatus,
	updatedAt time.Time,
) error {
	if err := errors.Join(expected.ID.Validate(), next.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", expected.ID.Bytes(), string(expected.Status)).
		Updates(map[string]any{
			"status":     string(next),
			"updated_at": updatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", expected.ID.Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", expected.ID.String())
	}
	return errs.NewConflictError("order", expected.ID.String())
}

// UpdateStatuses moves every listed order whose row still holds its expected
// status in a single statement, and returns the ids the statement touched.
func (r *GormOrderRepository) UpdateStatuses(
	ctx context.Context,
	expected []ports.ExpectedStatus,
	next order.FulfillmentStatus,
	updatedAt time.Time,
) ([]kernel.UUID, error) {
	if err := next.Validate(); err != nil {
		return nil, err
	}
	if len(expected) == 0 {
		return []kernel.UUID{}, nil
	}

	pairs := make([][]any, 0, len(expected))
	for _, e := range expected {
		if err := e.ID.Validate(); err != nil {
			return nil, err
		}
		pairs = append(pairs, []any{e.ID.Bytes(), string(e.Status)})
	}

	var raw []string
	err := r.db.WithContext(ctx).Raw(`
		UPDATE orders
		SET status = ?, updated_at = ?
		WHERE (id, status) IN ?
		RETURNING id
	`, string(next), updatedAt, pairs).Scan(&raw).Error
	if err != nil {
		return nil, err
	}

	updated := make([]kernel.UUID, 0, len(raw))
	for _, id := range raw {
		u, idErr := kernel.UUIDFromString(id)
		if idErr != nil {
			return nil, idErr
		}
		updated = append(updated, u)
	}

	return updated, nil
}
