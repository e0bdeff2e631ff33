package http

import (
	"errors"
	"net/http"

	"escrow/internal/core/application/usecases/commands"
	"escrow/internal/core/domain/model/order"
	"escrow/internal/api/servers"
	"escrow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusOf maps an error returned by the use cases to its HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, commands.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, order.ErrWrongPayer):
		return http.StatusForbidden
	case errors.Is(err, order.ErrInsufficientDeposit):
		return http.StatusPaymentRequired
	case errors.Is(err, order.ErrAlreadyPaid),
		errors.Is(err, order.ErrRefundNotAllowed),
		errors.Is(err, errs.ErrObjectAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as a servers.Error. Internal failures are logged and
// reported without their details.
func (s *Server) fail(ctx echo.Context, err error) error {
	code := statusOf(err)
	message := err.Error()

	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
		message = http.StatusText(code)
	}

	return ctx.JSON(code, servers.Error{Code: int32(code), Message: message})
}

func (s *Server) badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{Code: http.StatusBadRequest, Message: message})
}
