package order

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"footprint/internal/core/domain/model/kernel"
	"footprint/internal/pkg/errs"
)

// MaxNoteLength bounds the optional operator note on a status change.
const MaxNoteLength = 1000

// StatusHistoryEntry records one applied status change. Entries are values: once
// built they are never mutated, and stores only append them.
//
// PreviousStatus is empty only for the entry written when the order is created.
type StatusHistoryEntry struct {
	id             kernel.UUID
	orderID        kernel.UUID
	status         FulfillmentStatus
	previousStatus FulfillmentStatus
	changedBy      string
	changedAt      time.Time
	note           string
}

// NewStatusHistoryEntry records previous -> status for orderID.
func NewStatusHistoryEntry(
	orderID kernel.UUID,
	previous, status FulfillmentStatus,
	changedBy string,
	changedAt time.Time,
	note string,
) (StatusHistoryEntry, error) {
	return RestoreStatusHistoryEntry(kernel.NewUUID(), orderID, previous, status, changedBy, changedAt, note)
}

// NewInitialHistoryEntry records the creation of an order in the pending status.
func NewInitialHistoryEntry(o *Order, changedBy string) (StatusHistoryEntry, error) {
	if err := o.Validate(); err != nil {
		return StatusHistoryEntry{}, err
	}
	return NewStatusHistoryEntry(o.ID(), "", o.Status(), changedBy, o.CreatedAt(), "")
}

// RestoreStatusHistoryEntry rebuilds an entry read from the history store.
func RestoreStatusHistoryEntry(
	id, orderID kernel.UUID,
	previous, status FulfillmentStatus,
	changedBy string,
	changedAt time.Time,
	note string,
) (StatusHistoryEntry, error) {
	var previousErr error
	if previous != "" {
		previousErr = previous.Validate()
	}

	changedBy = strings.TrimSpace(changedBy)
	var changedByErr error
	if changedBy == "" {
		changedByErr = errs.NewValueIsRequiredError("changedBy")
	}

	var changedAtErr error
	if changedAt.IsZero() {
		changedAtErr = errs.NewValueIsRequiredError("changedAt")
	}

	var noteErr error
	if n := utf8.RuneCountInString(note); n > MaxNoteLength {
		noteErr = errs.NewValueIsOutOfRangeError("note", n, 0, MaxNoteLength)
	}

	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		status.Validate(),
		previousErr,
		changedByErr,
		changedAtErr,
		noteErr,
	); err != nil {
		return StatusHistoryEntry{}, err
	}

	return StatusHistoryEntry{
		id:             id,
		orderID:        orderID,
		status:         status,
		previousStatus: previous,
		changedBy:      changedBy,
		changedAt:      changedAt,
		note:           note,
	}, nil
}

func (e StatusHistoryEntry) ID() kernel.UUID                   { return e.id }
func (e StatusHistoryEntry) OrderID() kernel.UUID              { return e.orderID }
func (e StatusHistoryEntry) Status() FulfillmentStatus         { return e.status }
func (e StatusHistoryEntry) PreviousStatus() FulfillmentStatus { return e.previousStatus }
func (e StatusHistoryEntry) ChangedBy() string                 { return e.changedBy }
func (e StatusHistoryEntry) ChangedAt() time.Time              { return e.changedAt }
func (e StatusHistoryEntry) Note() string                      { return e.note }
