// Package services provides domain services that work across many orders or
// that need configuration the aggregates should not carry.
//
// The package includes:
//   - TransitionBatcher: partitions a batch of orders into those that may take a
//     target status and those that may not, with a readable reason for each
//   - DeliveryCalendar: business-day arithmetic for delivery estimates and for
//     spotting orders stuck in production
//   - PrintRenderer: turns a customer photo into a print file of exact pixel size
//
// All services are pure: they never touch a store, and their results depend only
// on their arguments and construction-time configuration.
package services
