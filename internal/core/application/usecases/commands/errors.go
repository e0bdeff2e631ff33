package commands

import "errors"

var (
	// ErrUnauthorized is returned when an owner-only operation is called by anyone else.
	ErrUnauthorized = errors.New("caller is not the owner")

	// ErrOrderNotFound is returned when no order is stored under the requested ID.
	// It is always joined with the store's errs.ErrObjectNotFound.
	ErrOrderNotFound = errors.New("order not found")

	// ErrDuplicateOrder is returned when creating an order under an ID that is already taken.
	ErrDuplicateOrder = errors.New("order already exists")
)
