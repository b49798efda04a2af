package order

import "errors"

var (
	// ErrIllegalTransition matches every rejected status change.
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrFinalStatus additionally matches rejections whose current status is terminal.
	ErrFinalStatus = errors.New("order is in a final status")
)

// IllegalTransitionError reports that Target is not reachable from Current. It is
// deterministic and must never be retried.
type IllegalTransitionError struct {
	Current FulfillmentStatus
	Target  FulfillmentStatus

	// Reason is the localized, operator-facing explanation naming both labels.
	Reason string
}

func NewIllegalTransitionError(current, target FulfillmentStatus, labels StatusLabeler) *IllegalTransitionError {
	if labels == nil {
		labels = HebrewLabels
	}
	return &IllegalTransitionError{
		Current: current,
		Target:  target,
		Reason:  labels.DescribeIllegalTransition(current, target),
	}
}

// Final reports whether the order had no legal transitions left.
func (e *IllegalTransitionError) Final() bool {
	return e.Current.IsTerminal()
}

func (e *IllegalTransitionError) Error() string {
	return ErrIllegalTransition.Error() + ": " + e.Reason
}

func (e *IllegalTransitionError) Unwrap() []error {
	if e.Final() {
		return []error{ErrIllegalTransition, ErrFinalStatus}
	}
	return []error{ErrIllegalTransition}
}
