package http

import (
	"context"
	"log/slog"
	"net/http"

	"escrow/internal/core/application/usecases/commands"
	"escrow/internal/core/application/usecases/queries"
	"escrow/internal/core/domain/model/kernel"
	"escrow/internal/api/servers"

	"github.com/labstack/echo/v4"
)

type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
}

type PayOrderHandler interface {
	Handle(ctx context.Context, cmd commands.PayOrderCommand) (commands.TransferOutcome, error)
}

type RefundOrderHandler interface {
	Handle(ctx context.Context, cmd commands.RefundOrderCommand) (commands.TransferOutcome, error)
}

type GetOrderHandler interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
}

type GetOrderTransfersHandler interface {
	Handle(ctx context.Context, query queries.GetOrderTransfersQuery) ([]queries.GetOrderTransfersQueryResponse, error)
}

type GetEscrowBalanceHandler interface {
	Handle(ctx context.Context, query queries.GetEscrowBalanceQuery) (queries.GetEscrowBalanceQueryResponse, error)
}

// Server implements servers.ServerInterface on top of the escrow use cases.
// Caller identity and attached deposit arrive as headers set by the
// environment in front of the service.
type Server struct {
	// Command handlers
	createOrderHandler CreateOrderHandler
	payOrderHandler    PayOrderHandler
	refundOrderHandler RefundOrderHandler

	// Query handlers
	getOrderHandler          GetOrderHandler
	getOrderTransfersHandler GetOrderTransfersHandler
	getEscrowBalanceHandler  GetEscrowBalanceHandler

	logger *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(
	createOrderHandler CreateOrderHandler,
	payOrderHandler PayOrderHandler,
	refundOrderHandler RefundOrderHandler,
	getOrderHandler GetOrderHandler,
	getOrderTransfersHandler GetOrderTransfersHandler,
	getEscrowBalanceHandler GetEscrowBalanceHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		payOrderHandler:          payOrderHandler,
		refundOrderHandler:       refundOrderHandler,
		getOrderHandler:          getOrderHandler,
		getOrderTransfersHandler: getOrderTransfersHandler,
		getEscrowBalanceHandler:  getEscrowBalanceHandler,
		logger:                   logger,
	}
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context, params servers.CreateOrderParams) error {
	var body servers.CreateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	caller, err := kernel.NewAccountID(params.XCallerId)
	if err != nil {
		return s.fail(ctx, err)
	}
	orderID, err := kernel.NewOrderID(body.OrderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	payerID, err := kernel.NewAccountID(body.PayerId)
	if err != nil {
		return s.fail(ctx, err)
	}
	amount, err := kernel.ParseAmount(body.Amount)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(caller, orderID, payerID, amount)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderID servers.OrderId) error {
	id, err := kernel.NewOrderID(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	order, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.Order{
		OrderId:     order.OrderID.String(),
		PayerId:     order.PayerID.String(),
		Amount:      order.Amount.String(),
		IsCompleted: order.IsCompleted,
		IsRefunded:  order.IsRefunded,
		CreatedAt:   order.CreatedAt,
	})
}

// PayOrder handles POST /api/v1/orders/{orderId}/pay. A missing
// X-Attached-Deposit header means nothing was attached.
func (s *Server) PayOrder(ctx echo.Context, orderID servers.OrderId, params servers.PayOrderParams) error {
	signer, err := kernel.NewAccountID(params.XCallerId)
	if err != nil {
		return s.fail(ctx, err)
	}
	id, err := kernel.NewOrderID(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	var attached kernel.Amount
	if params.XAttachedDeposit != nil {
		attached, err = kernel.ParseAmount(*params.XAttachedDeposit)
		if err != nil {
			return s.fail(ctx, err)
		}
	}

	cmd, err := commands.NewPayOrderCommand(signer, id, attached)
	if err != nil {
		return s.fail(ctx, err)
	}

	outcome, err := s.payOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toTransferOutcome(outcome))
}

// RefundOrder handles POST /api/v1/orders/{orderId}/refund.
func (s *Server) RefundOrder(ctx echo.Context, orderID servers.OrderId, params servers.RefundOrderParams) error {
	caller, err := kernel.NewAccountID(params.XCallerId)
	if err != nil {
		return s.fail(ctx, err)
	}
	id, err := kernel.NewOrderID(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewRefundOrderCommand(caller, id)
	if err != nil {
		return s.fail(ctx, err)
	}

	outcome, err := s.refundOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toTransferOutcome(outcome))
}

// GetOrderTransfers handles GET /api/v1/orders/{orderId}/transfers.
func (s *Server) GetOrderTransfers(ctx echo.Context, orderID servers.OrderId) error {
	id, err := kernel.NewOrderID(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderTransfersQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	transfers, err := s.getOrderTransfersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.Transfer, len(transfers))
	for i, t := range transfers {
		response[i] = servers.Transfer{
			Id:           t.ID.Bytes(),
			Recipient:    t.Recipient.String(),
			Amount:       t.Amount.String(),
			Kind:         servers.TransferKind(t.Kind.String()),
			Status:       servers.TransferStatus(t.Status.String()),
			CreatedAt:    t.CreatedAt,
			DispatchedAt: t.DispatchedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetEscrowBalance handles GET /api/v1/escrow/balance.
func (s *Server) GetEscrowBalance(ctx echo.Context) error {
	balance, err := s.getEscrowBalanceHandler.Handle(ctx.Request().Context(), queries.NewGetEscrowBalanceQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.EscrowBalance{
		Held:       balance.Held.String(),
		HeldOrders: balance.HeldOrders,
	})
}

func toTransferOutcome(outcome commands.TransferOutcome) servers.TransferOutcome {
	if !outcome.Issued {
		return servers.TransferOutcome{Issued: false}
	}

	id := outcome.TransferID.Bytes()
	recipient := outcome.Recipient.String()
	amount := outcome.Amount.String()

	return servers.TransferOutcome{
		Issued:     true,
		TransferId: &id,
		Recipient:  &recipient,
		Amount:     &amount,
	}
}
