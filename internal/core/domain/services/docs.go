// Package services provides domain services of the escrow: business
// operations that span the Order and Transfer aggregates.
//
// The package includes:
//   - Cashier: settles and refunds orders and issues the resulting value transfers
package services
