// Package audit models the administrative audit log. It is separate from the
// per-order status history: one entry describes one operator action, however
// many orders it touched.
package audit

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"footprint/internal/core/domain/model/kernel"
	"footprint/internal/pkg/errs"
)

// Action names an audited operation.
type Action string

const (
	ActionBulkStatusChange Action = "orders.bulk_status_change"
)

// Entry is an immutable audit record. Details holds action-specific JSON.
type Entry struct {
	id        kernel.UUID
	actorID   string
	action    Action
	details   json.RawMessage
	createdAt time.Time
}

// NewEntry marshals details and stamps a fresh id.
func NewEntry(actorID string, action Action, details any, createdAt time.Time) (Entry, error) {
	raw, err := json.Marshal(details)
	if err != nil {
		return Entry{}, errs.NewValueIsInvalidErrorWithCause("details", err)
	}
	return RestoreEntry(kernel.NewUUID(), actorID, action, raw, createdAt)
}

func RestoreEntry(id kernel.UUID, actorID string, action Action, details []byte, createdAt time.Time) (Entry, error) {
	actorID = strings.TrimSpace(actorID)

	var actorErr, actionErr, detailsErr, createdAtErr error
	if actorID == "" {
		actorErr = errs.NewValueIsRequiredError("actorId")
	}
	if action == "" {
		actionErr = errs.NewValueIsRequiredError("action")
	}
	if !json.Valid(details) {
		detailsErr = errs.NewValueIsInvalidError("details")
	}
	if createdAt.IsZero() {
		createdAtErr = errs.NewValueIsRequiredError("createdAt")
	}
	if err := errors.Join(id.Validate(), actorErr, actionErr, detailsErr, createdAtErr); err != nil {
		return Entry{}, err
	}

	return Entry{
		id:        id,
		actorID:   actorID,
		action:    action,
		details:   append(json.RawMessage(nil), details...),
		createdAt: createdAt,
	}, nil
}

func (e Entry) ID() kernel.UUID      { return e.id }
func (e Entry) ActorID() string      { return e.actorID }
func (e Entry) Action() Action       { return e.action }
func (e Entry) CreatedAt() time.Time { return e.createdAt }

// Details returns a copy of the raw JSON payload.
func (e Entry) Details() json.RawMessage {
	return append(json.RawMessage(nil), e.details...)
}

// DecodeDetails unmarshals the payload into v.
func (e Entry) DecodeDetails(v any) error {
	return json.Unmarshal(e.details, v)
}

// BulkStatusChange is the details payload of ActionBulkStatusChange.
type BulkStatusChange struct {
	TargetStatus string          `json:"targetStatus"`
	RequestedIDs []string        `json:"requestedIds"`
	SucceededIDs []string        `json:"succeededIds"`
	Failures     []FailureDetail `json:"failures"`
}

type FailureDetail struct {
	OrderID string `json:"orderId"`
	Reason  string `json:"reason"`
}
