package services

import (
	"footprint/internal/core/domain/model/order"
)

// OrderSnapshot is what the batcher needs to know about one order.
type OrderSnapshot struct {
	ID            string
	CurrentStatus order.FulfillmentStatus
}

// TransitionFailure explains why one order cannot take the target status.
type TransitionFailure struct {
	OrderID string
	Reason  string
}

// TransitionResult partitions a batch. Every input id appears exactly once across
// Valid and Invalid.
type TransitionResult struct {
	Valid   []string
	Invalid []TransitionFailure
}

// TransitionBatcher is a domain service that decides, for a batch of orders and
// one target status, which orders may legally move.
//
// It performs no I/O and holds no state beyond the labels used in failure
// reasons, so one instance may be shared between goroutines. It places no limit
// on batch size; callers enforce batch policy before calling Partition.
//
// Example usage:
//
//	batcher := NewTransitionBatcher(order.HebrewLabels)
//	result := batcher.Partition(snapshots, order.Printing)
//	// persist result.Valid, report result.Invalid
type TransitionBatcher struct {
	labels order.StatusLabeler
}

// NewTransitionBatcher creates a batcher whose reasons use labels. A nil labeler
// falls back to Hebrew.
func NewTransitionBatcher(labels order.StatusLabeler) TransitionBatcher {
	if labels == nil {
		labels = order.HebrewLabels
	}
	return TransitionBatcher{labels: labels}
}

// Partition checks every snapshot against the transition table.
//
// Rules:
//   - validity is decided only by order.IsValidFulfillmentTransition
//   - invalid reasons name the labels of both statuses
//   - input order is preserved within each bucket
//   - duplicate ids are reported once per occurrence
//
// Both returned slices are non-nil.
func (b TransitionBatcher) Partition(orders []OrderSnapshot, target order.FulfillmentStatus) TransitionResult {
	result := TransitionResult{
		Valid:   make([]string, 0, len(orders)),
		Invalid: make([]TransitionFailure, 0),
	}

	for _, o := range orders {
		if o.CurrentStatus.CanTransitionTo(target) {
			result.Valid = append(result.Valid, o.ID)
			continue
		}
		result.Invalid = append(result.Invalid, TransitionFailure{
			OrderID: o.ID,
			Reason:  b.labels.DescribeIllegalTransition(o.CurrentStatus, target),
		})
	}

	return result
}
