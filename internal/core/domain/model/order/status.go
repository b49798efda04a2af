package order

import (
	"fmt"

	"footprint/internal/pkg/errs"
)

// FulfillmentStatus is the stage of physical order processing. It is persisted
// and transmitted as its code string.
//
// State transitions:
//
//	pending ──> printing ──> ready_to_ship ──> shipped ──> delivered
//	   │           │               │              │
//	   └───────────┴───────────────┴──────────────┴──────> cancelled
//
// delivered and cancelled are terminal.
type FulfillmentStatus string

const (
	// Pending is the status of every newly created order.
	Pending FulfillmentStatus = "pending"

	// Printing means the print file has been sent to production.
	Printing FulfillmentStatus = "printing"

	// ReadyToShip means the print is packed and waiting for the carrier.
	ReadyToShip FulfillmentStatus = "ready_to_ship"

	// Shipped means the carrier has the parcel. Shipped orders cannot go back.
	Shipped FulfillmentStatus = "shipped"

	// Delivered is terminal.
	Delivered FulfillmentStatus = "delivered"

	// Cancelled is terminal.
	Cancelled FulfillmentStatus = "cancelled"
)

// allStatuses lists the statuses in lifecycle order.
var allStatuses = [...]FulfillmentStatus{Pending, Printing, ReadyToShip, Shipped, Delivered, Cancelled}

// transitions is the only source of legal status changes. It is never written
// after initialization; callers receive copies of its rows.
var transitions = map[FulfillmentStatus][]FulfillmentStatus{
	Pending:     {Printing, Cancelled},
	Printing:    {ReadyToShip, Cancelled},
	ReadyToShip: {Shipped, Cancelled},
	Shipped:     {Delivered, Cancelled},
	Delivered:   {},
	Cancelled:   {},
}

// AllStatuses returns every fulfillment status in lifecycle order.
func AllStatuses() []FulfillmentStatus {
	out := make([]FulfillmentStatus, len(allStatuses))
	copy(out, allStatuses[:])
	return out
}

// IsValidFulfillmentStatus reports whether value is one of the six status codes.
// Matching is exact: "Pending" and " pending" are rejected.
func IsValidFulfillmentStatus(value string) bool {
	_, ok := transitions[FulfillmentStatus(value)]
	return ok
}

// ParseFulfillmentStatus converts boundary input into a FulfillmentStatus.
//
// Returns:
//   - the status if value is a known code
//   - a ValueIsRequiredError if value is empty
//   - a ValueIsInvalidError naming the "status" field otherwise
func ParseFulfillmentStatus(value string) (FulfillmentStatus, error) {
	if value == "" {
		return "", errs.NewValueIsRequiredError("status")
	}
	if !IsValidFulfillmentStatus(value) {
		return "", errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a fulfillment status", value))
	}
	return FulfillmentStatus(value), nil
}

// IsValidFulfillmentTransition reports whether the edge current -> next exists in
// the transition table. A status is never implicitly allowed to transition to
// itself, and unknown statuses have no edges.
func IsValidFulfillmentTransition(current, next FulfillmentStatus) bool {
	for _, candidate := range transitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the statuses reachable from current in one step, in
// lifecycle order. Terminal and unknown statuses return an empty slice.
func AllowedTransitions(current FulfillmentStatus) []FulfillmentStatus {
	row := transitions[current]
	out := make([]FulfillmentStatus, len(row))
	copy(out, row)
	return out
}

// ValidateTransition checks current -> next against the transition table and
// returns an *IllegalTransitionError described with labels when the edge is missing.
func ValidateTransition(current, next FulfillmentStatus, labels StatusLabeler) error {
	if IsValidFulfillmentTransition(current, next) {
		return nil
	}
	return NewIllegalTransitionError(current, next, labels)
}

// Validate returns a ValueIsInvalidError when s is not a known status.
func (s FulfillmentStatus) Validate() error {
	if !IsValidFulfillmentStatus(string(s)) {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a fulfillment status", string(s)))
	}
	return nil
}

// IsTerminal reports whether s is a known status with no outgoing transitions.
func (s FulfillmentStatus) IsTerminal() bool {
	row, ok := transitions[s]
	return ok && len(row) == 0
}

// CanTransitionTo is the method form of IsValidFulfillmentTransition.
func (s FulfillmentStatus) CanTransitionTo(next FulfillmentStatus) bool {
	return IsValidFulfillmentTransition(s, next)
}

func (s FulfillmentStatus) String() string {
	return string(s)
}
