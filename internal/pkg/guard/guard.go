// Package guard detects command and query values that bypassed their constructors.
//
// Commands in this service validate their inputs once, in the constructor. A zero
// value built with a struct literal skips that validation, so every guarded type
// embeds a ConstructorGuard and checks it before a handler acts on the value:
//
//	type ChangeOrderStatusCommand struct {
//	    orderID kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func (c ChangeOrderStatusCommand) Validate() error {
//	    return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
//	}
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes no error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is an immutable marker that is only set by NewConstructorGuard.
// It is safe to copy and to share between goroutines.
type ConstructorGuard struct {
	isConstructed bool
}

func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard and validationError (or
// ErrDefaultConstructorGuard when it is nil) for the zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
