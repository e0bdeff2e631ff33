// Package order provides the Order aggregate of the escrow: the record of
// one transaction between the owner and a designated payer for a fixed amount.
//
// The package includes:
//   - Order: the aggregate root holding identity, payer, amount and lifecycle
//   - Status: the state machine Created -> Paid -> Refunded
//
// Key business rules:
//   - Only the designated payer may pay an order, with at least its amount attached
//   - An order is paid at most once and refunded at most once
//   - Only paid orders can be refunded; the refund is exactly the order amount
//   - Amount and payer never change after creation
package order
