package cmd

import (
	"fmt"
	"strconv"

	"escrow/internal/adapters/out/postgres"
	"escrow/internal/core/application/usecases/commands"
	"escrow/internal/core/domain/model/kernel"
	"escrow/internal/pkg/errs"
)

const (
	BrokerRabbitMQ = "rabbitmq"
	BrokerNATS     = "nats"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	EscrowOwnerID        string
	OrderIDCollision     string
	TransferDispatchSize string

	TransferBroker string
	RabbitMQURL    string
	RabbitMQQueue  string
	NATSURL        string
	NATSSubject    string
}

// OwnerID is the account allowed to create and refund orders. It is fixed
// for the lifetime of the process.
func (c Config) OwnerID() (kernel.AccountID, error) {
	owner, err := kernel.NewAccountID(c.EscrowOwnerID)
	if err != nil {
		return kernel.AccountID{}, fmt.Errorf("ESCROW_OWNER_ID: %w", err)
	}
	return owner, nil
}

func (c Config) CollisionPolicy() (commands.CollisionPolicy, error) {
	policy, err := commands.ParseCollisionPolicy(c.OrderIDCollision)
	if err != nil {
		return 0, fmt.Errorf("ORDER_ID_COLLISION: %w", err)
	}
	return policy, nil
}

// DispatchBatchSize defaults to commands.DefaultDispatchBatchSize when unset.
func (c Config) DispatchBatchSize() (int, error) {
	if c.TransferDispatchSize == "" {
		return commands.DefaultDispatchBatchSize, nil
	}

	n, err := strconv.Atoi(c.TransferDispatchSize)
	if err != nil {
		return 0, fmt.Errorf("TRANSFER_DISPATCH_BATCH: %w", errs.NewValueIsInvalidErrorWithCause("batch size", err))
	}
	if _, err := commands.NewDispatchTransfersCommand(n); err != nil {
		return 0, fmt.Errorf("TRANSFER_DISPATCH_BATCH: %w", err)
	}
	return n, nil
}

func (c Config) Broker() (string, error) {
	switch c.TransferBroker {
	case "", BrokerRabbitMQ:
		return BrokerRabbitMQ, nil
	case BrokerNATS:
		return BrokerNATS, nil
	default:
		return "", fmt.Errorf("TRANSFER_BROKER: %w", errs.NewValueIsInvalidErrorWithCause(
			"broker", fmt.Errorf("%q is neither %q nor %q", c.TransferBroker, BrokerRabbitMQ, BrokerNATS),
		))
	}
}

// DSN is the connection string shared by GORM and the notification listener.
func (c Config) DSN() string {
	return postgres.DSN(c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
