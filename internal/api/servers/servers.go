// Package servers holds the escrow API contract: the wire types, the echo
// bindings that decode path and header parameters, and the OpenAPI document
// they are written against. The bindings are maintained by hand in the
// oapi-codegen layout; tests keep the routes and openapi.yaml in step.
package servers

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for TransferKind.
const (
	Overpayment TransferKind = "Overpayment"
	Refund      TransferKind = "Refund"
)

// Defines values for TransferStatus.
const (
	Dispatched TransferStatus = "Dispatched"
	Pending    TransferStatus = "Pending"
)

// Amount Non-negative integer in the smallest currency unit, as a decimal string.
type Amount = string

// EscrowBalance defines model for EscrowBalance.
type EscrowBalance struct {
	Held       string `json:"held"`
	HeldOrders int64  `json:"heldOrders"`
}

// Error defines model for Error.
type Error struct {
	Code    int32  `json:"code"`
	Message string `json:"message"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	Amount  Amount `json:"amount"`
	OrderId string `json:"orderId"`
	PayerId string `json:"payerId"`
}

// Order defines model for Order.
type Order struct {
	Amount      Amount    `json:"amount"`
	CreatedAt   time.Time `json:"createdAt"`
	IsCompleted bool      `json:"isCompleted"`
	IsRefunded  bool      `json:"isRefunded"`
	OrderId     string    `json:"orderId"`
	PayerId     string    `json:"payerId"`
}

// Transfer defines model for Transfer.
type Transfer struct {
	Amount       Amount             `json:"amount"`
	CreatedAt    time.Time          `json:"createdAt"`
	DispatchedAt *time.Time         `json:"dispatchedAt,omitempty"`
	Id           openapi_types.UUID `json:"id"`
	Kind         TransferKind       `json:"kind"`
	Recipient    string             `json:"recipient"`
	Status       TransferStatus     `json:"status"`
}

// TransferKind defines model for Transfer.Kind.
type TransferKind string

// TransferStatus defines model for Transfer.Status.
type TransferStatus string

// TransferOutcome defines model for TransferOutcome.
type TransferOutcome struct {
	Amount     *Amount             `json:"amount,omitempty"`
	Issued     bool                `json:"issued"`
	Recipient  *string             `json:"recipient,omitempty"`
	TransferId *openapi_types.UUID `json:"transferId,omitempty"`
}

// CallerId defines model for CallerId.
type CallerId = string

// OrderId defines model for OrderId.
type OrderId = string

// CreateOrderParams defines parameters for CreateOrder.
type CreateOrderParams struct {
	XCallerId CallerId `json:"X-Caller-Id"`
}

// PayOrderParams defines parameters for PayOrder.
type PayOrderParams struct {
	XCallerId        CallerId `json:"X-Caller-Id"`
	XAttachedDeposit *Amount  `json:"X-Attached-Deposit,omitempty"`
}

// RefundOrderParams defines parameters for RefundOrder.
type RefundOrderParams struct {
	XCallerId CallerId `json:"X-Caller-Id"`
}

// CreateOrderJSONRequestBody defines body for CreateOrder for application/json ContentType.
type CreateOrderJSONRequestBody = NewOrder

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Register an order a payer will settle
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context, params CreateOrderParams) error
	// Read an order
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderId OrderId) error
	// Settle an order with the attached deposit
	// (POST /api/v1/orders/{orderId}/pay)
	PayOrder(ctx echo.Context, orderId OrderId, params PayOrderParams) error
	// Return a paid order's amount to its payer
	// (POST /api/v1/orders/{orderId}/refund)
	RefundOrder(ctx echo.Context, orderId OrderId, params RefundOrderParams) error
	// List the transfers issued for an order
	// (GET /api/v1/orders/{orderId}/transfers)
	GetOrderTransfers(ctx echo.Context, orderId OrderId) error
	// Funds currently held for paid, unrefunded orders
	// (GET /api/v1/escrow/balance)
	GetEscrowBalance(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	var params CreateOrderParams

	callerID, err := bindCallerID(ctx)
	if err != nil {
		return err
	}
	params.XCallerId = callerID

	return w.Handler.CreateOrder(ctx, params)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}

	return w.Handler.GetOrder(ctx, orderId)
}

// PayOrder converts echo context to params.
func (w *ServerInterfaceWrapper) PayOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}

	var params PayOrderParams

	params.XCallerId, err = bindCallerID(ctx)
	if err != nil {
		return err
	}

	headers := ctx.Request().Header
	if valueList, found := headers[http.CanonicalHeaderKey("X-Attached-Deposit")]; found {
		var XAttachedDeposit Amount
		n := len(valueList)
		if n != 1 {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Expected one value for X-Attached-Deposit, got %d", n))
		}

		err = runtime.BindStyledParameterWithOptions("simple", "X-Attached-Deposit", valueList[0], &XAttachedDeposit,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: false})
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter X-Attached-Deposit: %s", err))
		}

		params.XAttachedDeposit = &XAttachedDeposit
	}

	return w.Handler.PayOrder(ctx, orderId, params)
}

// RefundOrder converts echo context to params.
func (w *ServerInterfaceWrapper) RefundOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}

	var params RefundOrderParams

	params.XCallerId, err = bindCallerID(ctx)
	if err != nil {
		return err
	}

	return w.Handler.RefundOrder(ctx, orderId, params)
}

// GetOrderTransfers converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrderTransfers(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}

	return w.Handler.GetOrderTransfers(ctx, orderId)
}

// GetEscrowBalance converts echo context to params.
func (w *ServerInterfaceWrapper) GetEscrowBalance(ctx echo.Context) error {
	return w.Handler.GetEscrowBalance(ctx)
}

func bindOrderID(ctx echo.Context) (OrderId, error) {
	var orderId OrderId

	err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	return orderId, nil
}

func bindCallerID(ctx echo.Context) (CallerId, error) {
	headers := ctx.Request().Header
	valueList, found := headers[http.CanonicalHeaderKey("X-Caller-Id")]
	if !found {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Header parameter X-Caller-Id is required, but not found")
	}

	n := len(valueList)
	if n != 1 {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Expected one value for X-Caller-Id, got %d", n))
	}

	var XCallerId CallerId
	err := runtime.BindStyledParameterWithOptions("simple", "X-Caller-Id", valueList[0], &XCallerId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: true})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter X-Caller-Id: %s", err))
	}

	return XCallerId, nil
}

// EchoRouter is the subset of *echo.Echo and *echo.Group used to register routes.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the routes under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/v1/orders/:orderId", wrapper.GetOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/pay", wrapper.PayOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/refund", wrapper.RefundOrder)
	router.GET(baseURL+"/api/v1/orders/:orderId/transfers", wrapper.GetOrderTransfers)
	router.GET(baseURL+"/api/v1/escrow/balance", wrapper.GetEscrowBalance)
}

//go:embed openapi.yaml
var rawSpec []byte

// GetSwagger returns the parsed and validated OpenAPI document of the API.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	swagger, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("error loading OpenAPI document: %w", err)
	}

	if err := swagger.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
	}

	return swagger, nil
}
