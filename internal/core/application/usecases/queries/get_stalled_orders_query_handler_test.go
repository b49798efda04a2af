package queries_test

import (
	"context"
	"testing"
	"time"

	"footprint/internal/adapters/out/postgres/orderrepo"
	"footprint/internal/core/application/usecases/queries"
	"footprint/internal/core/domain/model/kernel"
	"footprint/internal/core/domain/model/order"
	"footprint/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestNewGetStalledOrdersQuery(t *testing.T) {
	threshold := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	t.Run("should require statuses", func(t *testing.T) {
		_, err := queries.NewGetStalledOrdersQuery(nil, threshold)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject final statuses", func(t *testing.T) {
		_, err := queries.NewGetStalledOrdersQuery([]order.FulfillmentStatus{order.Printing, order.Delivered}, threshold)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, "statuses", errs.ParamOf(err))
	})

	t.Run("should reject unknown statuses", func(t *testing.T) {
		_, err := queries.NewGetStalledOrdersQuery([]order.FulfillmentStatus{"stuck"}, threshold)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should require a threshold", func(t *testing.T) {
		_, err := queries.NewGetStalledOrdersQuery([]order.FulfillmentStatus{order.Printing}, time.Time{})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

type GetStalledOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetStalledOrdersQueryHandler
}

func (suite *GetStalledOrdersQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))

	suite.handler = queries.NewGetStalledOrdersQueryHandler(db)
}

func (suite *GetStalledOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetStalledOrdersQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
}

func (suite *GetStalledOrdersQueryHandlerTestSuite) seed(number string, status order.FulfillmentStatus, updatedAt time.Time) kernel.UUID {
	id := kernel.NewUUID()
	dto := orderrepo.OrderDTO{
		ID:          id.Bytes(),
		OrderNumber: number,
		Status:      string(status),
		CreatedAt:   updatedAt.Add(-time.Hour),
		UpdatedAt:   updatedAt,
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return id
}

func (suite *GetStalledOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewGetStalledOrdersQuery([]order.FulfillmentStatus{order.Printing}, time.Now())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetStalledOrdersQueryHandlerTestSuite) TestHandle_ReturnsOldOrdersInWatchedStatuses() {
	threshold := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	oldest := suite.seed("FP-1", order.ReadyToShip, threshold.Add(-72*time.Hour))
	old := suite.seed("FP-2", order.Printing, threshold.Add(-time.Minute))
	suite.seed("FP-3", order.Printing, threshold.Add(time.Minute))
	suite.seed("FP-4", order.Pending, threshold.Add(-96*time.Hour))
	suite.seed("FP-5", order.Shipped, threshold.Add(-96*time.Hour))

	query, err := queries.NewGetStalledOrdersQuery(
		[]order.FulfillmentStatus{order.Printing, order.ReadyToShip}, threshold)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal(oldest, result[0].ID)
	suite.Equal("FP-1", result[0].OrderNumber)
	suite.Equal(order.ReadyToShip, result[0].Status)
	suite.Equal(old, result[1].ID)
	suite.True(result[1].UpdatedAt.Equal(threshold.Add(-time.Minute)))
}

func (suite *GetStalledOrdersQueryHandlerTestSuite) TestHandle_NotConstructed() {
	_, err := suite.handler.Handle(context.Background(), queries.GetStalledOrdersQuery{})

	suite.Require().ErrorIs(err, queries.ErrGetStalledOrdersQueryIsNotConstructed)
}

func TestGetStalledOrdersQueryHandlerTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(GetStalledOrdersQueryHandlerTestSuite))
}
