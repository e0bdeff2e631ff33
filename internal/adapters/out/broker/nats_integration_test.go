package broker

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"escrow/internal/core/domain/model/transfer"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/suite"
	tcnats "github.com/testcontainers/testcontainers-go/modules/nats"
)

const testSubject = "escrow.transfers.test"

type NATSTransfererTestSuite struct {
	suite.Suite
	container  *tcnats.NATSContainer
	transferer *NATSTransferer
	consumer   *nats.Conn
	inbox      *nats.Subscription
}

func (suite *NATSTransfererTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcnats.Run(ctx, "nats:2.10-alpine")
	suite.Require().NoError(err)
	suite.container = container

	url, err := container.ConnectionString(ctx)
	suite.Require().NoError(err)

	suite.consumer, err = nats.Connect(url)
	suite.Require().NoError(err)
	suite.inbox, err = suite.consumer.SubscribeSync(testSubject)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.consumer.Flush())

	suite.transferer, err = NewNATSTransferer(url, testSubject, slog.New(slog.NewTextHandler(io.Discard, nil)))
	suite.Require().NoError(err)
}

func (suite *NATSTransfererTestSuite) TearDownSuite() {
	if suite.transferer != nil {
		suite.NoError(suite.transferer.Close())
	}
	if suite.consumer != nil {
		suite.consumer.Close()
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *NATSTransfererTestSuite) TestTransfer_PublishesMessageWithID() {
	tr := newBrokerTransfer(suite.T(), "order_1", 1500)

	suite.Require().NoError(suite.transferer.Transfer(context.Background(), tr))

	msg := suite.receive(tr.ID().String())
	suite.Equal(contentType, msg.Header.Get("Content-Type"))

	var body TransferMessage
	suite.Require().NoError(json.Unmarshal(msg.Data, &body))
	suite.Equal(tr.ID().String(), body.TransferID)
	suite.Equal("1500", body.Amount)
	suite.Equal("Refund", body.Kind)
}

func (suite *NATSTransfererTestSuite) TestTransfer_CancelledContext_ReturnsError() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := suite.transferer.Transfer(ctx, newBrokerTransfer(suite.T(), "order_2", 1))

	suite.Require().ErrorIs(err, context.Canceled)
}

func (suite *NATSTransfererTestSuite) TestTransfer_RejectsUnconstructedTransfer() {
	err := suite.transferer.Transfer(context.Background(), &transfer.Transfer{})

	suite.Require().ErrorIs(err, transfer.ErrTransferIsNotConstructed)
}

// receive skips messages left over from earlier tests.
func (suite *NATSTransfererTestSuite) receive(id string) *nats.Msg {
	deadline := time.Now().Add(5 * time.Second)
	for {
		msg, err := suite.inbox.NextMsg(time.Until(deadline))
		suite.Require().NoError(err)
		if msg.Header.Get(nats.MsgIdHdr) == id {
			return msg
		}
	}
}

func TestNATSTransfererTestSuite(t *testing.T) {
	suite.Run(t, new(NATSTransfererTestSuite))
}
