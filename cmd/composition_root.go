package cmd

import (
	"fmt"
	"log/slog"
	"time"
	_ "time/tzdata" // time zones without a system zoneinfo

	httpin "footprint/internal/adapters/in/http"
	"footprint/internal/adapters/out/postgres"
	redislimiter "footprint/internal/adapters/out/redis"
	"footprint/internal/core/application/usecases/commands"
	"footprint/internal/core/application/usecases/queries"
	"footprint/internal/core/domain/model/kernel"
	"footprint/internal/core/domain/model/order"
	"footprint/internal/core/domain/services"
	"footprint/internal/core/ports"
	"footprint/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const bulkRateLimitPrefix = "footprint:bulk-status"

// Infrastructure holds the outbound clients built by main. Redis is optional.
type Infrastructure struct {
	Events  ports.EventPublisher
	Storage ports.FileStorage
	Redis   redis.Cmdable
}

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	infra      Infrastructure
	calendar   *services.DeliveryCalendar
	labels     order.StatusLabeler
	clock      kernel.Clock
	logger     *slog.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, infra Infrastructure, logger *slog.Logger) (CompositionRoot, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("failed to load time zone %q: %w", cfg.Timezone, err)
	}

	calendarCfg := services.DefaultCalendarConfig(loc)
	calendarCfg.Holidays = cfg.Holidays
	calendarCfg.CutoffHour = cfg.CutoffHour
	calendarCfg.ProductionDays = cfg.ProductionDays
	calendarCfg.ShippingDays = cfg.ShippingDays
	calendar, err := services.NewDeliveryCalendar(calendarCfg)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("invalid delivery calendar: %w", err)
	}

	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		infra:      infra,
		calendar:   calendar,
		labels:     order.LabelsForLocale(cfg.LabelLocale),
		clock:      kernel.SystemClock{},
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.CreateGorm()
	})
	return commands.NewCreateOrderCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	repos := c.uowFactory.CreateGorm()
	return commands.NewChangeOrderStatusCommandHandler(
		repos.OrderRepository(),
		repos.StatusHistoryRepository(),
		c.infra.Events,
		c.labels,
		c.clock,
		c.logger,
	)
}

func (c *CompositionRoot) CreateBulkChangeOrderStatusCommandHandler() commands.BulkChangeOrderStatusCommandHandler {
	repos := c.uowFactory.CreateGorm()
	return commands.NewBulkChangeOrderStatusCommandHandler(
		repos.OrderRepository(),
		repos.StatusHistoryRepository(),
		repos.AuditLogRepository(),
		c.infra.Events,
		services.NewTransitionBatcher(c.labels),
		c.clock,
		c.logger,
	)
}

func (c *CompositionRoot) CreateGeneratePrintFileCommandHandler() commands.GeneratePrintFileCommandHandler {
	return commands.NewGeneratePrintFileCommandHandler(
		c.uowFactory.CreateGorm().OrderRepository(),
		c.infra.Storage,
		services.NewPrintRenderer(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetOrderStatusQueryHandler() queries.GetOrderStatusQueryHandler {
	repos := c.uowFactory.CreateGorm()
	return queries.NewGetOrderStatusQueryHandler(
		repos.OrderRepository(),
		repos.StatusHistoryRepository(),
		c.labels,
		c.calendar,
	)
}

func (c *CompositionRoot) CreateGetStalledOrdersQueryHandler() queries.GetStalledOrdersQueryHandler {
	return queries.NewGetStalledOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	stalled := jobs.NewStalledOrdersJob(
		c.CreateGetStalledOrdersQueryHandler(),
		c.calendar,
		c.clock,
		jobs.StalledOrdersConfig{
			Schedule:     c.cfg.StalledOrdersSchedule,
			BusinessDays: c.cfg.StalledAfterBusinessDays,
		},
		c.logger,
	)
	return jobs.NewJobManager(stalled)
}

// CreateBulkRateLimit counts bulk operations in Redis when it is configured and
// in process memory otherwise.
func (c *CompositionRoot) CreateBulkRateLimit() (echo.MiddlewareFunc, error) {
	if c.infra.Redis == nil {
		c.logger.Warn("REDIS_URL not set, bulk rate limit is per process")
		return httpin.MemoryRateLimit(c.cfg.BulkRateLimitPerMinute), nil
	}

	limiter, err := redislimiter.NewFixedWindowLimiter(
		c.infra.Redis, bulkRateLimitPrefix, c.cfg.BulkRateLimitPerMinute, time.Minute, c.clock)
	if err != nil {
		return nil, err
	}
	return httpin.RateLimit(limiter, c.logger), nil
}

// CreateServer builds the HTTP server together with its handlers.
func (c *CompositionRoot) CreateServer() *httpin.Server {
	createOrder := c.CreateCreateOrderCommandHandler()
	changeStatus := c.CreateChangeOrderStatusCommandHandler()
	bulkChangeStatus := c.CreateBulkChangeOrderStatusCommandHandler()
	generatePrintFile := c.CreateGeneratePrintFileCommandHandler()

	return httpin.NewServer(
		&createOrder,
		&changeStatus,
		&bulkChangeStatus,
		&generatePrintFile,
		c.CreateGetOrderStatusQueryHandler(),
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
