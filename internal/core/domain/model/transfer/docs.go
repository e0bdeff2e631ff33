// Package transfer provides the Transfer aggregate: a request, issued by the
// escrow, to move value to an account. Transfers are recorded in the same
// unit of work as the order change that caused them and are delivered to the
// value transfer collaborator afterwards, so an order update is never
// committed without its transfer request and vice versa.
//
// Two kinds of transfers exist:
//   - Overpayment: the excess of a deposit returned to the payer on payment
//   - Refund: the escrowed order amount returned to the payer on refund
//
// A transfer is Pending until it has been handed to the collaborator and
// Dispatched afterwards.
package transfer
