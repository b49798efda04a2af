package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"footprint/internal/core/application/usecases/queries"
	"footprint/internal/core/domain/model/kernel"
	"footprint/internal/core/domain/model/order"
	"footprint/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

const (
	// DefaultStalledOrdersSchedule fires at the top of every hour.
	DefaultStalledOrdersSchedule = "0 0 * * * *"

	DefaultStalledAfterBusinessDays = 2

	runTimeout = time.Minute
)

// watchedStatuses are the in-house production steps. Orders sitting in them for
// too long need an operator; pending orders wait on payment and shipped ones on
// the carrier.
var watchedStatuses = []order.FulfillmentStatus{order.Printing, order.ReadyToShip}

type StalledOrdersFinder interface {
	Handle(ctx context.Context, query queries.GetStalledOrdersQuery) ([]queries.StalledOrder, error)
}

// StalledOrdersConfig controls when the job runs and what counts as stalled.
type StalledOrdersConfig struct {
	Schedule     string // six-field cron expression, seconds first
	BusinessDays int
}

func DefaultStalledOrdersConfig() StalledOrdersConfig {
	return StalledOrdersConfig{
		Schedule:     DefaultStalledOrdersSchedule,
		BusinessDays: DefaultStalledAfterBusinessDays,
	}
}

// StalledOrdersJob warns about orders that have not left printing or
// ready_to_ship for more than the configured number of business days.
type StalledOrdersJob struct {
	finder   StalledOrdersFinder
	calendar *services.DeliveryCalendar
	clock    kernel.Clock
	cfg      StalledOrdersConfig
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewStalledOrdersJob(
	finder StalledOrdersFinder,
	calendar *services.DeliveryCalendar,
	clock kernel.Clock,
	cfg StalledOrdersConfig,
	logger *slog.Logger,
) *StalledOrdersJob {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	if cfg.Schedule == "" {
		cfg.Schedule = DefaultStalledOrdersSchedule
	}
	if cfg.BusinessDays <= 0 {
		cfg.BusinessDays = DefaultStalledAfterBusinessDays
	}
	return &StalledOrdersJob{
		finder:   finder,
		calendar: calendar,
		clock:    clock,
		cfg:      cfg,
		cron:     cron.New(cron.WithSeconds(), cron.WithLocation(calendar.Location())),
		logger:   logger.With("component", "stalled_orders_job"),
	}
}

func (j *StalledOrdersJob) Name() string {
	return "stalled orders"
}

// Start schedules the job. An invalid schedule is reported and nothing runs.
func (j *StalledOrdersJob) Start() error {
	_, err := j.cron.AddFunc(j.cfg.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()

		if _, err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Stalled orders job failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", j.cfg.Schedule, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stalled orders job started",
		"schedule", j.cfg.Schedule, "business_days", j.cfg.BusinessDays)
	return nil
}

// Stop unschedules the job and waits for a running check to finish.
func (j *StalledOrdersJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Stalled orders job stopped")
}

// Run performs one check and returns the stalled orders it found.
func (j *StalledOrdersJob) Run(ctx context.Context) ([]queries.StalledOrder, error) {
	threshold := j.calendar.SubtractBusinessDays(j.clock.Now(), j.cfg.BusinessDays)

	query, err := queries.NewGetStalledOrdersQuery(watchedStatuses, threshold)
	if err != nil {
		return nil, err
	}

	stalled, err := j.finder.Handle(ctx, query)
	if err != nil {
		return nil, err
	}

	for _, o := range stalled {
		j.logger.WarnContext(ctx, "Order stalled in production",
			"order_id", o.ID.String(),
			"order_number", o.OrderNumber,
			"status", string(o.Status),
			"updated_at", o.UpdatedAt,
			"business_days", j.calendar.BusinessDaysBetween(o.UpdatedAt, j.clock.Now()),
		)
	}
	if len(stalled) > 0 {
		j.logger.InfoContext(ctx, "Stalled orders check finished", "stalled", len(stalled), "threshold", threshold)
	}
	return stalled, nil
}
