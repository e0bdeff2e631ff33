package http_test

import (
	"context"
	"time"

	"escrow/internal/core/application/usecases/commands"
	"escrow/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/mock"
)

type MockCreateOrderHandler struct {
	mock.Mock
}

func (m *MockCreateOrderHandler) Handle(ctx context.Context, cmd commands.CreateOrderCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockPayOrderHandler struct {
	mock.Mock
}

func (m *MockPayOrderHandler) Handle(ctx context.Context, cmd commands.PayOrderCommand) (commands.TransferOutcome, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.TransferOutcome), args.Error(1)
}

type MockRefundOrderHandler struct {
	mock.Mock
}

func (m *MockRefundOrderHandler) Handle(
	ctx context.Context,
	cmd commands.RefundOrderCommand,
) (commands.TransferOutcome, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.TransferOutcome), args.Error(1)
}

type MockGetOrderHandler struct {
	mock.Mock
}

func (m *MockGetOrderHandler) Handle(
	ctx context.Context,
	query queries.GetOrderQuery,
) (queries.GetOrderQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetOrderQueryResponse), args.Error(1)
}

type MockGetOrderTransfersHandler struct {
	mock.Mock
}

func (m *MockGetOrderTransfersHandler) Handle(
	ctx context.Context,
	query queries.GetOrderTransfersQuery,
) ([]queries.GetOrderTransfersQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]queries.GetOrderTransfersQueryResponse), args.Error(1)
}

type MockGetEscrowBalanceHandler struct {
	mock.Mock
}

func (m *MockGetEscrowBalanceHandler) Handle(
	ctx context.Context,
	query queries.GetEscrowBalanceQuery,
) (queries.GetEscrowBalanceQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetEscrowBalanceQueryResponse), args.Error(1)
}

type MockRequestObserver struct {
	mock.Mock
}

func (m *MockRequestObserver) ObserveHTTP(method, route string, code int, elapsed time.Duration) {
	m.Called(method, route, code, elapsed)
}
