package order

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"footprint/internal/core/domain/model/kernel"
	"footprint/internal/pkg/errs"
)

// MaxOrderNumberLength bounds the display-only order number.
const MaxOrderNumberLength = 32

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Order is the aggregate root for one customer order as seen by fulfillment.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a non-empty order number
//   - Always carries exactly one known FulfillmentStatus
//   - Status only changes through ChangeStatus, which consults the transition table
//   - updatedAt never precedes createdAt
//
// Only status and updatedAt change after creation.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// orderNumber is the human-facing reference shown to customers, e.g. "FP-10234"
	orderNumber string

	// status is the current fulfillment stage
	status FulfillmentStatus

	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a pending order. This is the only way to start a new order.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - orderNumber: Display reference, 1..32 characters after trimming
//   - now: Creation time, also used as the first updatedAt
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), "FP-10234", clock.Now())
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(id kernel.UUID, orderNumber string, now time.Time) (*Order, error) {
	order := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setOrderNumber(orderNumber),
		order.setTimestamps(now, now),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder rebuilds an order from persisted state. It validates the same
// invariants as NewOrder but accepts any known status.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	status FulfillmentStatus,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	order := &Order{isConstructed: true}

	if err := errors.Join(
		order.setID(id),
		order.setOrderNumber(orderNumber),
		order.setStatus(status),
		order.setTimestamps(createdAt, updatedAt),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) OrderNumber() string {
	return o.orderNumber
}

func (o *Order) Status() FulfillmentStatus {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// ChangeStatus moves the order to target if the transition table allows it.
//
// Returns:
//   - the previous status on success; status and updatedAt are updated
//   - a ValueIsInvalidError if target is not a known status
//   - an *IllegalTransitionError (described with labels) if the edge is missing
//
// On error the order is left untouched.
func (o *Order) ChangeStatus(target FulfillmentStatus, at time.Time, labels StatusLabeler) (FulfillmentStatus, error) {
	if err := target.Validate(); err != nil {
		return "", err
	}

	if err := ValidateTransition(o.status, target, labels); err != nil {
		return "", err
	}

	previous := o.status
	o.status = target
	if at.After(o.updatedAt) {
		o.updatedAt = at
	}
	return previous, nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	if n := utf8.RuneCountInString(orderNumber); n > MaxOrderNumberLength {
		return errs.NewValueIsOutOfRangeError("orderNumber", n, 1, MaxOrderNumberLength)
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setStatus(status FulfillmentStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setTimestamps(createdAt, updatedAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	if updatedAt.Before(createdAt) {
		return errs.NewValueIsInvalidErrorWithCause(
			"updatedAt",
			fmt.Errorf("%s is before creation time %s", updatedAt.Format(time.RFC3339), createdAt.Format(time.RFC3339)),
		)
	}
	o.createdAt = createdAt
	o.updatedAt = updatedAt
	return nil
}
