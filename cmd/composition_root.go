package cmd

import (
	"fmt"
	"io"
	"log/slog"

	httpin "escrow/internal/adapters/in/http"
	"escrow/internal/adapters/out/broker"
	"escrow/internal/adapters/out/postgres"
	"escrow/internal/core/application/usecases/commands"
	"escrow/internal/core/application/usecases/queries"
	"escrow/internal/core/domain/model/kernel"
	"escrow/internal/core/ports"
	"escrow/internal/jobs"
	"escrow/internal/pkg/metrics"

	"gorm.io/gorm"
)

// CompositionRoot builds the handlers, adapters and jobs of the service from
// one validated configuration.
type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	metrics    *metrics.EscrowMetrics
	logger     *slog.Logger
	clock      ports.Clock

	owner     kernel.AccountID
	policy    commands.CollisionPolicy
	batchSize int
}

func NewCompositionRoot(
	configs Config,
	gormDB *gorm.DB,
	escrowMetrics *metrics.EscrowMetrics,
	logger *slog.Logger,
) (CompositionRoot, error) {
	owner, err := configs.OwnerID()
	if err != nil {
		return CompositionRoot{}, err
	}
	policy, err := configs.CollisionPolicy()
	if err != nil {
		return CompositionRoot{}, err
	}
	batchSize, err := configs.DispatchBatchSize()
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, escrowMetrics),
		metrics:    escrowMetrics,
		logger:     logger,
		clock:      ports.SystemClock,
		owner:      owner,
		policy:     policy,
		batchSize:  batchSize,
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.owner, c.clock, c.policy)
}

func (c *CompositionRoot) CreatePayOrderCommandHandler() commands.PayOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewPayOrderCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateRefundOrderCommandHandler() commands.RefundOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewRefundOrderCommandHandler(f, c.owner, c.clock)
}

func (c *CompositionRoot) CreateDispatchTransfersCommandHandler(
	transferer ports.ValueTransferer,
) commands.DispatchTransfersCommandHandler {
	var f commands.TransferUoWFactory = FuncTransferUoWFactory(func() commands.TransferUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchTransfersCommandHandler(f, transferer, c.clock)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderTransfersQueryHandler() queries.GetOrderTransfersQueryHandler {
	return queries.NewGetOrderTransfersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetEscrowBalanceQueryHandler() queries.GetEscrowBalanceQueryHandler {
	return queries.NewGetEscrowBalanceQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreatePayOrderCommandHandler(),
		c.CreateRefundOrderCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetOrderTransfersQueryHandler(),
		c.CreateGetEscrowBalanceQueryHandler(),
		c.logger.With("component", "http"),
	)
}

// ValueTransferer is a transfer service connection that must be closed on shutdown.
type ValueTransferer interface {
	ports.ValueTransferer
	io.Closer
}

// CreateValueTransferer connects to the broker named by TRANSFER_BROKER.
func (c *CompositionRoot) CreateValueTransferer() (ValueTransferer, error) {
	name, err := c.configs.Broker()
	if err != nil {
		return nil, err
	}

	switch name {
	case BrokerNATS:
		t, err := broker.NewNATSTransferer(c.configs.NATSURL, c.configs.NATSSubject, c.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		return t, nil
	default:
		t, err := broker.NewRabbitMQTransferer(c.configs.RabbitMQURL, c.configs.RabbitMQQueue, c.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		return t, nil
	}
}

// CreateJobManager wires the dispatch job to transferer. wakeups may be nil.
func (c *CompositionRoot) CreateJobManager(transferer ports.ValueTransferer, wakeups <-chan struct{}) *jobs.JobManager {
	job := jobs.NewTransferDispatchJob(
		c.CreateDispatchTransfersCommandHandler(transferer),
		c.batchSize,
		wakeups,
		c.metrics,
		c.logger,
	)
	return jobs.NewJobManager(job)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncTransferUoWFactory func() commands.TransferUoW

func (f FuncTransferUoWFactory) Create() commands.TransferUoW {
	return f()
}
