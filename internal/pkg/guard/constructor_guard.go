// Package guard provides ConstructorGuard, a marker that lets value objects,
// commands and queries detect whether they were built through their
// constructor or used as a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded into structs whose zero value is not usable.
//
// Example:
//
//	var ErrRefundOrderCommandIsNotConstructed = errors.New("RefundOrderCommand must be created via NewRefundOrderCommand")
//
//	type RefundOrderCommand struct {
//	    orderID kernel.OrderID
//	    guard   guard.ConstructorGuard
//	}
//
//	func (c RefundOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrRefundOrderCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marking its owner as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
