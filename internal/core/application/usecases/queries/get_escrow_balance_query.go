package queries

import (
	"errors"

	"escrow/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetEscrowBalanceQueryIsNotConstructed = errors.New(
	"GetEscrowBalanceQuery must be created via NewGetEscrowBalanceQuery constructor",
)

// GetEscrowBalanceQuery reads the funds the escrow currently holds: the
// amounts of every paid order that has not been refunded.
type GetEscrowBalanceQuery struct {
	guard guard.ConstructorGuard
}

func NewGetEscrowBalanceQuery() GetEscrowBalanceQuery {
	return GetEscrowBalanceQuery{guard: guard.NewConstructorGuard()}
}

func (q GetEscrowBalanceQuery) Validate() error {
	return q.guard.Validate(ErrGetEscrowBalanceQueryIsNotConstructed)
}

// Held is unbounded: it is a sum of amounts, not a single transferable amount.
type GetEscrowBalanceQueryResponse struct {
	Held       decimal.Decimal
	HeldOrders int64
}
