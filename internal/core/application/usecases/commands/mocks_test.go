package commands_test

import (
	"context"
	"time"

	"escrow/internal/core/application/usecases/commands"
	"escrow/internal/core/domain/model/kernel"
	"escrow/internal/core/domain/model/order"
	"escrow/internal/core/domain/model/transfer"
	"escrow/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var (
	owner   = kernel.MustNewAccountID("shop.near")
	alice   = kernel.MustNewAccountID("alice.near")
	bob     = kernel.MustNewAccountID("bob.near")
	orderID = kernel.MustNewOrderID("order_1")
	now     = time.Date(2022, 8, 30, 10, 0, 0, 0, time.UTC)
	clock   = ports.ClockFunc(func() time.Time { return now })
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Put(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockTransferRepository struct{ mock.Mock }

func (m *MockTransferRepository) Add(ctx context.Context, t *transfer.Transfer) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTransferRepository) Update(ctx context.Context, t *transfer.Transfer) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTransferRepository) GetPending(ctx context.Context, limit int) ([]*transfer.Transfer, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transfer.Transfer), args.Error(1)
}

type MockTxManager struct{ mock.Mock }

func (m *MockTxManager) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTxManager) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTxManager) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockUoW satisfies every unit of work flavor the handlers ask for.
type MockUoW struct{ MockTxManager }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) TransferRepository() ports.TransferRepository {
	args := m.Called()
	return args.Get(0).(ports.TransferRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockTransferUoWFactory struct{ mock.Mock }

func (m *MockTransferUoWFactory) Create() commands.TransferUoW {
	args := m.Called()
	return args.Get(0).(commands.TransferUoW)
}

type MockValueTransferer struct{ mock.Mock }

func (m *MockValueTransferer) Transfer(ctx context.Context, t *transfer.Transfer) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
