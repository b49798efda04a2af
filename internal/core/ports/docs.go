// Package ports defines the contracts between the application core and the
// infrastructure around it: stores, the event broker, object storage and the
// request rate limiter. Adapters under internal/adapters implement them; command
// and query handlers depend only on these interfaces.
package ports
