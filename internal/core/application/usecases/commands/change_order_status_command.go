package commands

import (
	"errors"
	"strings"
	"unicode/utf8"

	"footprint/internal/core/domain/model/kernel"
	"footprint/internal/core/domain/model/order"
	"footprint/internal/pkg/errs"
	"footprint/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand asks to move one order to a new fulfillment status on
// behalf of an operator.
//
// Example:
//
//	cmd, err := NewChangeOrderStatusCommand(orderID, "ready_to_ship", "admin-7", "packed")
//	if err != nil {
//	    return err // ValidationError naming the offending field
//	}
//	result, err := handler.Handle(ctx, cmd)
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  order.FulfillmentStatus
	actorID string
	note    string

	guard guard.ConstructorGuard
}

func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	status string,
	actorID string,
	note string,
) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
		cmd.setActorID(actorID),
		cmd.setNote(note),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return cmd, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ChangeOrderStatusCommand) Status() order.FulfillmentStatus {
	return c.status
}

func (c ChangeOrderStatusCommand) ActorID() string {
	return c.actorID
}

// Note is the optional operator comment stored with the history entry.
func (c ChangeOrderStatusCommand) Note() string {
	return c.note
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setStatus(status string) error {
	parsed, err := order.ParseFulfillmentStatus(status)
	if err != nil {
		return err
	}
	c.status = parsed
	return nil
}

func (c *ChangeOrderStatusCommand) setActorID(actorID string) error {
	actorID = strings.TrimSpace(actorID)
	if actorID == "" {
		return errs.NewValueIsRequiredError("actorId")
	}
	c.actorID = actorID
	return nil
}

func (c *ChangeOrderStatusCommand) setNote(note string) error {
	note = strings.TrimSpace(note)
	if n := utf8.RuneCountInString(note); n > order.MaxNoteLength {
		return errs.NewValueIsOutOfRangeError("note", n, 0, order.MaxNoteLength)
	}
	c.note = note
	return nil
}
