package commands_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"footprint/internal/core/application/usecases/commands"
	"footprint/internal/core/domain/model/audit"
	"footprint/internal/core/domain/model/kernel"
	"footprint/internal/core/domain/model/order"
	"footprint/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2026, 4, 20, 10, 0, 0, 0, time.UTC)

func testClock() kernel.Clock {
	return kernel.FixedClock{At: testNow}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, ids)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(
	ctx context.Context,
	expected ports.ExpectedStatus,
	next order.FulfillmentStatus,
	updatedAt time.Time,
) error {
	args := m.Called(ctx, expected, next, updatedAt)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateStatuses(
	ctx context.Context,
	expected []ports.ExpectedStatus,
	next order.FulfillmentStatus,
	updatedAt time.Time,
) ([]kernel.UUID, error) {
	args := m.Called(ctx, expected, next, updatedAt)
	if fn, ok := args.Get(0).(func([]ports.ExpectedStatus) []kernel.UUID); ok {
		return fn(expected), args.Error(1)
	}
	ids, _ := args.Get(0).([]kernel.UUID)
	return ids, args.Error(1)
}

type MockStatusHistoryRepository struct{ mock.Mock }

func (m *MockStatusHistoryRepository) Append(ctx context.Context, entry order.StatusHistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockStatusHistoryRepository) AppendBatch(ctx context.Context, entries []order.StatusHistoryEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockStatusHistoryRepository) ListByOrder(ctx context.Context, id kernel.UUID) ([]order.StatusHistoryEntry, error) {
	args := m.Called(ctx, id)
	entries, _ := args.Get(0).([]order.StatusHistoryEntry)
	return entries, args.Error(1)
}

type MockAuditLogRepository struct{ mock.Mock }

func (m *MockAuditLogRepository) Append(ctx context.Context, entry audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishStatusChanged(ctx context.Context, events ...ports.StatusChangedEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

type MockFileStorage struct{ mock.Mock }

func (m *MockFileStorage) Download(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockFileStorage) Upload(ctx context.Context, key string, body []byte, contentType string) error {
	args := m.Called(ctx, key, body, contentType)
	return args.Error(0)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) StatusHistoryRepository() ports.StatusHistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.StatusHistoryRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

func restoreOrder(status order.FulfillmentStatus) *order.Order {
	created := testNow.Add(-48 * time.Hour)
	o, err := order.RestoreOrder(kernel.NewUUID(), "FP-1001", status, created, created)
	if err != nil {
		panic(err)
	}
	return o
}
