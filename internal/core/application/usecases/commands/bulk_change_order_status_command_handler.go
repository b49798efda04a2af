package commands

import (
	"context"
	"log/slog"
	"time"

	"footprint/internal/core/domain/model/audit"
	"footprint/internal/core/domain/model/kernel"
	"footprint/internal/core/domain/model/order"
	"footprint/internal/core/domain/services"
	"footprint/internal/core/ports"
)

// Per-order failure reasons that do not come from the transition table.
const (
	ReasonOrderNotFound    = "order not found"
	ReasonConcurrentChange = "order status changed by another operator, reload and retry"
)

// OrderFailure explains why one order of a bulk request was not updated.
type OrderFailure struct {
	OrderID string
	Reason  string
}

// BulkChangeOrderStatusResult reports the outcome for every requested order.
// Every de-duplicated id appears exactly once, in Succeeded or in Failures.
type BulkChangeOrderStatusResult struct {
	Succeeded []kernel.UUID
	Failures  []OrderFailure
}

func (r BulkChangeOrderStatusResult) SuccessCount() int {
	return len(r.Succeeded)
}

func (r BulkChangeOrderStatusResult) FailedCount() int {
	return len(r.Failures)
}

// BulkChangeOrderStatusCommandHandler applies one status to many orders.
//
// Workflow:
//   - read every requested order in one call
//   - partition found orders with the TransitionBatcher
//   - write the valid set in one conditional call
//   - append history for updated orders, one audit entry for the whole
//     operation, and one event per updated order
//
// Partial failure is normal and reported per order. Only a failure of the read or
// of the status write fails the whole command, and then nothing is reported as
// succeeded. History, audit and event failures are logged and swallowed.
type BulkChangeOrderStatusCommandHandler struct {
	orders  ports.OrderRepository
	history ports.StatusHistoryRepository
	audit   ports.AuditLogRepository
	events  ports.EventPublisher
	batcher services.TransitionBatcher
	clock   kernel.Clock
	logger  *slog.Logger
}

func NewBulkChangeOrderStatusCommandHandler(
	orders ports.OrderRepository,
	history ports.StatusHistoryRepository,
	auditLog ports.AuditLogRepository,
	events ports.EventPublisher,
	batcher services.TransitionBatcher,
	clock kernel.Clock,
	logger *slog.Logger,
) BulkChangeOrderStatusCommandHandler {
	return BulkChangeOrderStatusCommandHandler{
		orders:  orders,
		history: history,
		audit:   auditLog,
		events:  events,
		batcher: batcher,
		clock:   clock,
		logger:  logger.With("component", "bulk_change_order_status"),
	}
}

func (h *BulkChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd BulkChangeOrderStatusCommand,
) (BulkChangeOrderStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return BulkChangeOrderStatusResult{}, err
	}

	requested := cmd.OrderIDs()
	target := cmd.Status()

	found, err := h.orders.GetMany(ctx, requested)
	if err != nil {
		return BulkChangeOrderStatusResult{}, storeError("fetch orders", err)
	}

	current := make(map[kernel.UUID]order.FulfillmentStatus, len(found))
	for _, o := range found {
		current[o.ID()] = o.Status()
	}

	reasons := make(map[kernel.UUID]string, len(requested))
	snapshots := make([]services.OrderSnapshot, 0, len(found))
	byString := make(map[string]kernel.UUID, len(requested))
	for _, id := range requested {
		status, ok := current[id]
		if !ok {
			reasons[id] = ReasonOrderNotFound
			continue
		}
		snapshots = append(snapshots, services.OrderSnapshot{ID: id.String(), CurrentStatus: status})
		byString[id.String()] = id
	}

	partition := h.batcher.Partition(snapshots, target)
	for _, failure := range partition.Invalid {
		reasons[byString[failure.OrderID]] = failure.Reason
	}

	now := h.clock.Now()
	updated, err := h.writeValid(ctx, partition.Valid, byString, current, target, now)
	if err != nil {
		return BulkChangeOrderStatusResult{}, err
	}

	result := BulkChangeOrderStatusResult{
		Succeeded: make([]kernel.UUID, 0, len(updated)),
		Failures:  make([]OrderFailure, 0, len(requested)-len(updated)),
	}
	for _, id := range requested {
		if _, ok := updated[id]; ok {
			result.Succeeded = append(result.Succeeded, id)
			continue
		}
		reason, ok := reasons[id]
		if !ok {
			reason = ReasonConcurrentChange
		}
		result.Failures = append(result.Failures, OrderFailure{OrderID: id.String(), Reason: reason})
	}

	h.appendHistory(ctx, result.Succeeded, current, target, cmd.ActorID(), now)
	h.appendAudit(ctx, cmd, result, now)
	h.publish(ctx, result.Succeeded, current, target, cmd.ActorID(), now)

	h.logger.InfoContext(ctx, "Bulk status change finished",
		"actor_id", cmd.ActorID(),
		"status", string(target),
		"requested", len(requested),
		"succeeded", result.SuccessCount(),
		"failed", result.FailedCount(),
	)

	return result, nil
}

func (h *BulkChangeOrderStatusCommandHandler) writeValid(
	ctx context.Context,
	valid []string,
	byString map[string]kernel.UUID,
	current map[kernel.UUID]order.FulfillmentStatus,
	target order.FulfillmentStatus,
	now time.Time,
) (map[kernel.UUID]struct{}, error) {
	updated := make(map[kernel.UUID]struct{}, len(valid))
	if len(valid) == 0 {
		return updated, nil
	}

	expected := make([]ports.ExpectedStatus, 0, len(valid))
	for _, s := range valid {
		id := byString[s]
		expected = append(expected, ports.ExpectedStatus{ID: id, Status: current[id]})
	}

	ids, err := h.orders.UpdateStatuses(ctx, expected, target, now)
	if err != nil {
		return nil, storeError("update order statuses", err)
	}

	for _, id := range ids {
		updated[id] = struct{}{}
	}
	return updated, nil
}

func (h *BulkChangeOrderStatusCommandHandler) appendHistory(
	ctx context.Context,
	ids []kernel.UUID,
	previous map[kernel.UUID]order.FulfillmentStatus,
	target order.FulfillmentStatus,
	actorID string,
	now time.Time,
) {
	if len(ids) == 0 {
		return
	}

	entries := make([]order.StatusHistoryEntry, 0, len(ids))
	for _, id := range ids {
		entry, err := order.NewStatusHistoryEntry(id, previous[id], target, actorID, now, "")
		if err != nil {
			h.logger.WarnContext(ctx, "Status history entry rejected", "order_id", id.String(), "error", err)
			continue
		}
		entries = append(entries, entry)
	}

	if err := h.history.AppendBatch(ctx, entries); err != nil {
		h.logger.WarnContext(ctx, "Status history batch append failed, changes kept",
			"orders", len(entries), "error", err)
	}
}

func (h *BulkChangeOrderStatusCommandHandler) appendAudit(
	ctx context.Context,
	cmd BulkChangeOrderStatusCommand,
	result BulkChangeOrderStatusResult,
	now time.Time,
) {
	details := audit.BulkStatusChange{
		TargetStatus: string(cmd.Status()),
		RequestedIDs: uuidStrings(cmd.OrderIDs()),
		SucceededIDs: uuidStrings(result.Succeeded),
		Failures:     make([]audit.FailureDetail, 0, len(result.Failures)),
	}
	for _, f := range result.Failures {
		details.Failures = append(details.Failures, audit.FailureDetail{OrderID: f.OrderID, Reason: f.Reason})
	}

	entry, err := audit.NewEntry(cmd.ActorID(), audit.ActionBulkStatusChange, details, now)
	if err == nil {
		err = h.audit.Append(ctx, entry)
	}
	if err != nil {
		h.logger.WarnContext(ctx, "Audit entry not written", "actor_id", cmd.ActorID(), "error", err)
	}
}

func (h *BulkChangeOrderStatusCommandHandler) publish(
	ctx context.Context,
	ids []kernel.UUID,
	previous map[kernel.UUID]order.FulfillmentStatus,
	target order.FulfillmentStatus,
	actorID string,
	now time.Time,
) {
	if len(ids) == 0 {
		return
	}

	events := make([]ports.StatusChangedEvent, 0, len(ids))
	for _, id := range ids {
		events = append(events, ports.StatusChangedEvent{
			OrderID:        id,
			Status:         target,
			PreviousStatus: previous[id],
			ChangedBy:      actorID,
			ChangedAt:      now,
		})
	}

	if err := h.events.PublishStatusChanged(ctx, events...); err != nil {
		h.logger.WarnContext(ctx, "Status change events not published", "orders", len(events), "error", err)
	}
}

func uuidStrings(ids []kernel.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
