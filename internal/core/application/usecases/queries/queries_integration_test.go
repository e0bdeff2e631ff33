package queries_test

import (
	"context"
	"math"
	"testing"
	"time"

	"escrow/internal/adapters/out/postgres/orderrepo"
	"escrow/internal/adapters/out/postgres/transferrepo"
	"escrow/internal/core/application/usecases/queries"
	"escrow/internal/core/domain/model/kernel"
	"escrow/internal/core/domain/model/order"
	"escrow/internal/core/domain/model/transfer"
	"escrow/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	alice = kernel.MustNewAccountID("alice.near")
	now   = time.Date(2022, 8, 30, 10, 0, 0, 0, time.UTC)
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(string, any) {}

type QueriesIntegrationTestSuite struct {
	suite.Suite
	container    *postgres.PostgresContainer
	db           *gorm.DB
	orderRepo    *orderrepo.GormOrderRepository
	transferRepo *transferrepo.GormTransferRepository
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &transferrepo.TransferDTO{}))

	suite.orderRepo = orderrepo.NewGormOrderRepository(db, noopTracker{})
	suite.transferRepo = transferrepo.NewGormTransferRepository(db, noopTracker{})
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, transfers").Error)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_ReturnsStoredRecord() {
	ctx := context.Background()
	o := suite.addOrder("order_1", 1000, order.Paid)

	query, err := queries.NewGetOrderQuery(o.ID())
	suite.Require().NoError(err)
	view, err := queries.NewGetOrderQueryHandler(suite.db).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Equal(o.ID(), view.OrderID)
	suite.Equal(alice, view.PayerID)
	suite.Equal(kernel.Amount(1000), view.Amount)
	suite.True(view.IsCompleted)
	suite.False(view.IsRefunded)
	suite.True(view.CreatedAt.Equal(now))
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_Missing_ReturnsNotFound() {
	query, err := queries.NewGetOrderQuery(kernel.MustNewOrderID("missing"))
	suite.Require().NoError(err)

	_, err = queries.NewGetOrderQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_InvalidQuery_ReturnsError() {
	_, err := queries.NewGetOrderQueryHandler(suite.db).Handle(context.Background(), queries.GetOrderQuery{})

	suite.Require().ErrorIs(err, queries.ErrGetOrderQueryIsNotConstructed)
}

func (suite *QueriesIntegrationTestSuite) TestGetEscrowBalance_CountsOnlyHeldOrders() {
	suite.addOrder("created", 1, order.Created)
	suite.addOrder("paid_1", 1000, order.Paid)
	suite.addOrder("paid_2", 250, order.Paid)
	suite.addOrder("refunded", 7000, order.Refunded)

	balance, err := queries.NewGetEscrowBalanceQueryHandler(suite.db).
		Handle(context.Background(), queries.NewGetEscrowBalanceQuery())

	suite.Require().NoError(err)
	suite.Equal("1250", balance.Held.String())
	suite.Equal(int64(2), balance.HeldOrders)
}

func (suite *QueriesIntegrationTestSuite) TestGetEscrowBalance_EmptyDatabase() {
	balance, err := queries.NewGetEscrowBalanceQueryHandler(suite.db).
		Handle(context.Background(), queries.NewGetEscrowBalanceQuery())

	suite.Require().NoError(err)
	suite.True(balance.Held.IsZero())
	suite.Zero(balance.HeldOrders)
}

func (suite *QueriesIntegrationTestSuite) TestGetEscrowBalance_SumBeyondUint64() {
	suite.addOrder("whale_1", kernel.Amount(math.MaxUint64), order.Paid)
	suite.addOrder("whale_2", kernel.Amount(math.MaxUint64), order.Paid)

	balance, err := queries.NewGetEscrowBalanceQueryHandler(suite.db).
		Handle(context.Background(), queries.NewGetEscrowBalanceQuery())

	suite.Require().NoError(err)
	suite.Equal("36893488147419103230", balance.Held.String())
	suite.Equal(int64(2), balance.HeldOrders)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrder_MaxAmount_RoundTrips() {
	o := suite.addOrder("whale", kernel.Amount(math.MaxUint64), order.Paid)

	query, err := queries.NewGetOrderQuery(o.ID())
	suite.Require().NoError(err)
	view, err := queries.NewGetOrderQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(kernel.Amount(math.MaxUint64), view.Amount)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrderTransfers_ListsInIssueOrder() {
	ctx := context.Background()
	o := suite.addOrder("order_1", 1000, order.Refunded)
	overpayment := suite.addTransfer(o, 500, transfer.Overpayment, now)
	refund := suite.addTransfer(o, 1000, transfer.Refund, now.Add(time.Minute))
	suite.Require().NoError(refund.MarkDispatched(now.Add(2 * time.Minute)))
	suite.Require().NoError(suite.transferRepo.Update(ctx, refund))

	other := suite.addOrder("order_2", 1, order.Refunded)
	suite.addTransfer(other, 1, transfer.Refund, now)

	query, err := queries.NewGetOrderTransfersQuery(o.ID())
	suite.Require().NoError(err)
	list, err := queries.NewGetOrderTransfersQueryHandler(suite.db).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(list, 2)
	suite.True(list[0].ID.IsEqual(overpayment.ID()))
	suite.Equal(transfer.Overpayment, list[0].Kind)
	suite.Equal(transfer.Pending, list[0].Status)
	suite.Nil(list[0].DispatchedAt)
	suite.True(list[1].ID.IsEqual(refund.ID()))
	suite.Equal(kernel.Amount(1000), list[1].Amount)
	suite.Equal(transfer.Dispatched, list[1].Status)
	suite.Require().NotNil(list[1].DispatchedAt)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrderTransfers_UnknownOrder_ReturnsEmptySlice() {
	query, err := queries.NewGetOrderTransfersQuery(kernel.MustNewOrderID("missing"))
	suite.Require().NoError(err)

	list, err := queries.NewGetOrderTransfersQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(list)
	suite.Empty(list)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrderTransfers_ContextCancellation_ReturnsError() {
	query, err := queries.NewGetOrderTransfersQuery(kernel.MustNewOrderID("order_1"))
	suite.Require().NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	list, err := queries.NewGetOrderTransfersQueryHandler(suite.db).Handle(ctx, query)

	suite.Require().Error(err)
	suite.Nil(list)
}

func (suite *QueriesIntegrationTestSuite) addOrder(id string, amount kernel.Amount, status order.Status) *order.Order {
	o, err := order.RestoreOrder(
		kernel.MustNewOrderID(id), alice, amount,
		status.IsCompleted(), status.IsRefunded(), now,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), o))
	return o
}

func (suite *QueriesIntegrationTestSuite) addTransfer(
	o *order.Order,
	amount kernel.Amount,
	kind transfer.Kind,
	at time.Time,
) *transfer.Transfer {
	t, err := transfer.NewTransfer(o.ID(), o.PayerID(), amount, kind, at)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.transferRepo.Add(context.Background(), t))
	return t
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesIntegrationTestSuite))
}
