// Package kernel provides the shared value objects of the escrow domain.
//
// The package includes:
//   - OrderID: the opaque key under which an order is stored
//   - AccountID: identity of the owner, a payer or a transfer recipient
//   - Amount: a non-negative integer quantity in the smallest currency unit
//   - UUID: identifier of issued value transfers
//
// All value objects are immutable. Identifiers reject their zero value in
// Validate so that uninitialized fields are caught before they reach storage.
package kernel
