package transferrepo_test

import (
	"context"
	"testing"
	"time"

	"escrow/internal/adapters/out/postgres/transferrepo"
	"escrow/internal/core/domain/model/kernel"
	"escrow/internal/core/domain/model/transfer"
	"escrow/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	orderID = kernel.MustNewOrderID("order_1")
	alice   = kernel.MustNewAccountID("alice.near")
	start   = time.Date(2022, 8, 30, 10, 0, 0, 0, time.UTC)
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(key string, aggregate any) {
	m.Called(key, aggregate)
}

type TransferRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *transferrepo.GormTransferRepository
	tracker    *MockAggregateTracker
}

func (suite *TransferRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&transferrepo.TransferDTO{}))
}

func (suite *TransferRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE transfers").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = transferrepo.NewGormTransferRepository(suite.db, suite.tracker)
}

func (suite *TransferRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *TransferRepositoryIntegrationTestSuite) TestAdd_RoundTripsThroughGetPending() {
	ctx := context.Background()
	t := suite.newTransfer(500, transfer.Overpayment, start)

	tracker := new(MockAggregateTracker)
	tracker.On("TrackAggregate", t.ID().String(), t).Once()
	repo := transferrepo.NewGormTransferRepository(suite.db, tracker)
	suite.Require().NoError(repo.Add(ctx, t))

	pending, err := suite.repository.GetPending(ctx, 10)

	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	got := pending[0]
	suite.True(got.ID().IsEqual(t.ID()))
	suite.True(got.OrderID().IsEqual(orderID))
	suite.True(got.Recipient().IsEqual(alice))
	suite.Equal(kernel.Amount(500), got.Amount())
	suite.Equal(transfer.Overpayment, got.Kind())
	suite.Equal(transfer.Pending, got.Status())
	suite.Nil(got.DispatchedAt())
	tracker.AssertExpectations(suite.T())
}

func (suite *TransferRepositoryIntegrationTestSuite) TestGetPending_OldestFirstAndLimited() {
	ctx := context.Background()
	newest := suite.newTransfer(3, transfer.Refund, start.Add(2*time.Minute))
	oldest := suite.newTransfer(1, transfer.Refund, start)
	middle := suite.newTransfer(2, transfer.Refund, start.Add(time.Minute))
	for _, t := range []*transfer.Transfer{newest, oldest, middle} {
		suite.Require().NoError(suite.repository.Add(ctx, t))
	}

	pending, err := suite.repository.GetPending(ctx, 2)

	suite.Require().NoError(err)
	suite.Require().Len(pending, 2)
	suite.True(pending[0].ID().IsEqual(oldest.ID()))
	suite.True(pending[1].ID().IsEqual(middle.ID()))
}

func (suite *TransferRepositoryIntegrationTestSuite) TestUpdate_DispatchedTransferLeavesPendingSet() {
	ctx := context.Background()
	t := suite.newTransfer(500, transfer.Refund, start)
	suite.Require().NoError(suite.repository.Add(ctx, t))

	suite.Require().NoError(t.MarkDispatched(start.Add(time.Second)))
	suite.Require().NoError(suite.repository.Update(ctx, t))

	pending, err := suite.repository.GetPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Empty(pending)

	var dto transferrepo.TransferDTO
	suite.Require().NoError(suite.db.First(&dto, "id = ?", t.ID().Bytes()).Error)
	suite.Equal(int(transfer.Dispatched), dto.Status)
	suite.Require().NotNil(dto.DispatchedAt)
	suite.True(dto.DispatchedAt.Equal(start.Add(time.Second)))
}

func (suite *TransferRepositoryIntegrationTestSuite) TestUpdate_NonExistentTransfer_ReturnsNotFound() {
	t := suite.newTransfer(1, transfer.Refund, start)

	err := suite.repository.Update(context.Background(), t)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *TransferRepositoryIntegrationTestSuite) TestGetPending_SkipsRowsLockedByAnotherDispatcher() {
	ctx := context.Background()
	first := suite.newTransfer(1, transfer.Refund, start)
	second := suite.newTransfer(2, transfer.Refund, start.Add(time.Second))
	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))

	tx := suite.db.Begin()
	suite.Require().NoError(tx.Error)
	defer tx.Rollback()

	claimed, err := transferrepo.NewGormTransferRepository(tx, suite.tracker).GetPending(ctx, 1)
	suite.Require().NoError(err)
	suite.Require().Len(claimed, 1)

	others, err := suite.repository.GetPending(ctx, 10)

	suite.Require().NoError(err)
	suite.Require().Len(others, 1)
	suite.True(others[0].ID().IsEqual(second.ID()))
}

func (suite *TransferRepositoryIntegrationTestSuite) TestGetPending_InvalidLimit() {
	_, err := suite.repository.GetPending(context.Background(), 0)

	suite.Require().ErrorIs(err, transferrepo.ErrInvalidLimit)
}

func (suite *TransferRepositoryIntegrationTestSuite) newTransfer(
	amount kernel.Amount,
	kind transfer.Kind,
	createdAt time.Time,
) *transfer.Transfer {
	t, err := transfer.NewTransfer(orderID, alice, amount, kind, createdAt)
	suite.Require().NoError(err)
	return t
}

func TestTransferRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(TransferRepositoryIntegrationTestSuite))
}
