package services

import (
	"errors"
	"fmt"
	"time"

	"footprint/internal/pkg/errs"
)

const holidayLayout = "2006-01-02"

// CalendarConfig configures a DeliveryCalendar.
type CalendarConfig struct {
	Location       *time.Location
	Holidays       []string // YYYY-MM-DD, interpreted in Location
	CutoffHour     int      // orders at or after this local hour start production the next business day
	ProductionDays int
	ShippingDays   int
}

// DefaultCalendarConfig returns the storefront defaults: 14:00 cut-off, three
// production days and two shipping days, on Israeli time.
func DefaultCalendarConfig(loc *time.Location) CalendarConfig {
	return CalendarConfig{
		Location:       loc,
		CutoffHour:     14,
		ProductionDays: 3,
		ShippingDays:   2,
	}
}

// DeliveryCalendar is a domain service for business-day arithmetic. The business
// week runs Sunday to Thursday; Friday, Saturday and configured holidays are
// skipped. All calculations happen on calendar dates in the configured location,
// so daylight saving changes never shift a result by a day.
type DeliveryCalendar struct {
	loc            *time.Location
	holidays       map[string]struct{}
	cutoffHour     int
	productionDays int
	shippingDays   int
}

func NewDeliveryCalendar(cfg CalendarConfig) (*DeliveryCalendar, error) {
	var locErr error
	if cfg.Location == nil {
		locErr = errs.NewValueIsRequiredError("location")
	}

	var cutoffErr error
	if cfg.CutoffHour < 0 || cfg.CutoffHour > 23 {
		cutoffErr = errs.NewValueIsOutOfRangeError("cutoffHour", cfg.CutoffHour, 0, 23)
	}

	var daysErr error
	if cfg.ProductionDays < 0 {
		daysErr = errs.NewValueIsOutOfRangeError("productionDays", cfg.ProductionDays, 0, "unbounded")
	}
	if cfg.ShippingDays < 0 {
		daysErr = errors.Join(daysErr, errs.NewValueIsOutOfRangeError("shippingDays", cfg.ShippingDays, 0, "unbounded"))
	}

	holidays := make(map[string]struct{}, len(cfg.Holidays))
	var holidayErrs []error
	for _, h := range cfg.Holidays {
		if _, err := time.Parse(holidayLayout, h); err != nil {
			holidayErrs = append(holidayErrs, errs.NewValueIsInvalidErrorWithCause("holidays", fmt.Errorf("%q: %w", h, err)))
			continue
		}
		holidays[h] = struct{}{}
	}

	if err := errors.Join(locErr, cutoffErr, daysErr, errors.Join(holidayErrs...)); err != nil {
		return nil, err
	}

	return &DeliveryCalendar{
		loc:            cfg.Location,
		holidays:       holidays,
		cutoffHour:     cfg.CutoffHour,
		productionDays: cfg.ProductionDays,
		shippingDays:   cfg.ShippingDays,
	}, nil
}

// Location returns the calendar's time zone.
func (c *DeliveryCalendar) Location() *time.Location {
	return c.loc
}

// IsBusinessDay reports whether t falls on a working day in the calendar's location.
func (c *DeliveryCalendar) IsBusinessDay(t time.Time) bool {
	local := t.In(c.loc)
	switch local.Weekday() {
	case time.Friday, time.Saturday:
		return false
	}
	_, holiday := c.holidays[local.Format(holidayLayout)]
	return !holiday
}

// AddBusinessDays returns midnight of the business day n working days after t.
// With n == 0 it returns t's own date when that is a business day, otherwise the
// next business day. Negative n is treated as 0.
func (c *DeliveryCalendar) AddBusinessDays(t time.Time, n int) time.Time {
	day := c.startOfDay(t)
	for !c.IsBusinessDay(day) {
		day = c.shiftDays(day, 1)
	}
	for n > 0 {
		day = c.shiftDays(day, 1)
		if c.IsBusinessDay(day) {
			n--
		}
	}
	return day
}

// SubtractBusinessDays returns midnight of the business day n working days before t.
// With n == 0 it returns t's own date when that is a business day, otherwise the
// previous business day.
func (c *DeliveryCalendar) SubtractBusinessDays(t time.Time, n int) time.Time {
	day := c.startOfDay(t)
	for !c.IsBusinessDay(day) {
		day = c.shiftDays(day, -1)
	}
	for n > 0 {
		day = c.shiftDays(day, -1)
		if c.IsBusinessDay(day) {
			n--
		}
	}
	return day
}

// BusinessDaysBetween counts business dates d with from < d <= to. It returns 0
// when to is not after from.
func (c *DeliveryCalendar) BusinessDaysBetween(from, to time.Time) int {
	start, end := c.startOfDay(from), c.startOfDay(to)
	count := 0
	for day := c.shiftDays(start, 1); !day.After(end); day = c.shiftDays(day, 1) {
		if c.IsBusinessDay(day) {
			count++
		}
	}
	return count
}

// ProductionStart returns the date production starts for an order placed at
// placedAt: the same day when placed on a business day before the cut-off hour,
// otherwise the next business day.
func (c *DeliveryCalendar) ProductionStart(placedAt time.Time) time.Time {
	local := placedAt.In(c.loc)
	if c.IsBusinessDay(local) && local.Hour() < c.cutoffHour {
		return c.startOfDay(local)
	}
	if !c.IsBusinessDay(local) {
		return c.AddBusinessDays(local, 0)
	}
	return c.AddBusinessDays(local, 1)
}

// EstimateDelivery returns the expected delivery date (midnight, calendar location)
// for an order placed at placedAt.
func (c *DeliveryCalendar) EstimateDelivery(placedAt time.Time) time.Time {
	return c.AddBusinessDays(c.ProductionStart(placedAt), c.productionDays+c.shippingDays)
}

func (c *DeliveryCalendar) startOfDay(t time.Time) time.Time {
	y, m, d := t.In(c.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.loc)
}

func (c *DeliveryCalendar) shiftDays(day time.Time, n int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, c.loc)
}
