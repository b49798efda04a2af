// Package order provides the Order aggregate and the fulfillment status machine
// that governs it after payment.
//
// The package includes:
//   - FulfillmentStatus: the closed set of fulfillment stages and the static
//     transition table that decides which status changes are legal
//   - StatusLabeler: localized display labels used in operator-facing messages
//   - IllegalTransitionError: the structured rejection of a status change
//   - Order: the aggregate root that owns the current status
//   - StatusHistoryEntry: the append-only record of one status change
//
// Key business rules:
//   - Orders are created in the pending status
//   - Status follows pending -> printing -> ready_to_ship -> shipped -> delivered
//   - cancelled is reachable from every non-terminal status
//   - delivered and cancelled are terminal and have no outgoing transitions
//   - There are no backward transitions and no implicit self transitions
//   - Every status change goes through the transition table, with no bypass
//
// The transition table is built once at package initialization and never written
// afterwards, so it is read concurrently without locking.
package order
