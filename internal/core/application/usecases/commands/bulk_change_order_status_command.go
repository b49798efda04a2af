package commands

import (
	"errors"
	"fmt"
	"strings"

	"footprint/internal/core/domain/model/kernel"
	"footprint/internal/core/domain/model/order"
	"footprint/internal/pkg/errs"
	"footprint/internal/pkg/guard"
)

// MaxBulkOrders is the largest batch one bulk status change may name.
const MaxBulkOrders = 100

var ErrBulkChangeOrderStatusCommandIsNotConstructed = errors.New(
	"BulkChangeOrderStatusCommand must be created via NewBulkChangeOrderStatusCommand constructor",
)

// BulkChangeOrderStatusCommand asks to move up to MaxBulkOrders orders to one
// status. Order ids are kept in request order with duplicates collapsed to their
// first occurrence.
type BulkChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderIDs []kernel.UUID
	status   order.FulfillmentStatus
	actorID  string

	guard guard.ConstructorGuard
}

// NewBulkChangeOrderStatusCommand validates the raw request. The size limit is
// checked against the ids as sent, before duplicates are collapsed.
func NewBulkChangeOrderStatusCommand(orderIDs []string, status string, actorID string) (BulkChangeOrderStatusCommand, error) {
	cmd := BulkChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderIDs(orderIDs),
		cmd.setStatus(status),
		cmd.setActorID(actorID),
	); err != nil {
		return BulkChangeOrderStatusCommand{}, err
	}

	return cmd, nil
}

func (c BulkChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrBulkChangeOrderStatusCommandIsNotConstructed)
}

// OrderIDs returns a copy of the de-duplicated ids.
func (c BulkChangeOrderStatusCommand) OrderIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(c.orderIDs))
	copy(out, c.orderIDs)
	return out
}

func (c BulkChangeOrderStatusCommand) Status() order.FulfillmentStatus {
	return c.status
}

func (c BulkChangeOrderStatusCommand) ActorID() string {
	return c.actorID
}

// setOrderIDs caps the list as sent, duplicates included, then collapses
// duplicates keeping the first occurrence.
func (c *BulkChangeOrderStatusCommand) setOrderIDs(raw []string) error {
	if len(raw) == 0 {
		return errs.NewValueIsRequiredError("orderIds")
	}
	if len(raw) > MaxBulkOrders {
		return errs.NewValueIsOutOfRangeError("orderIds", len(raw), 1, MaxBulkOrders)
	}

	ids := make([]kernel.UUID, 0, len(raw))
	seen := make(map[kernel.UUID]struct{}, len(raw))
	var malformed []error
	for i, s := range raw {
		id, err := kernel.UUIDFromString(strings.TrimSpace(s))
		if err != nil {
			malformed = append(malformed, fmt.Errorf("orderIds[%d] %q: %w", i, s, err))
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	if len(malformed) > 0 {
		return errs.NewValueIsInvalidErrorWithCause("orderIds", errors.Join(malformed...))
	}

	c.orderIDs = ids
	return nil
}

func (c *BulkChangeOrderStatusCommand) setStatus(status string) error {
	parsed, err := order.ParseFulfillmentStatus(status)
	if err != nil {
		return err
	}
	c.status = parsed
	return nil
}

func (c *BulkChangeOrderStatusCommand) setActorID(actorID string) error {
	actorID = strings.TrimSpace(actorID)
	if actorID == "" {
		return errs.NewValueIsRequiredError("actorId")
	}
	c.actorID = actorID
	return nil
}
