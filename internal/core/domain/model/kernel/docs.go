// Package kernel provides the shared primitives of the fulfillment domain model.
//
// The package includes:
//   - UUID: a validated identifier for orders, history rows and audit entries
//   - Clock: the source of "now" used for updated_at and history timestamps
//
// Both are value types and safe for concurrent use.
package kernel
