package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"escrow/internal/api/servers"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
)

const apiPrefix = "/api/"

// RequestObserver receives one observation per served request.
type RequestObserver interface {
	ObserveHTTP(method, route string, code int, elapsed time.Duration)
}

// RequestValidator rejects API requests that do not match the OpenAPI
// document before they reach a handler. Paths outside /api/ are not checked.
func RequestValidator(swagger *openapi3.T) (echo.MiddlewareFunc, error) {
	// Servers would pin the router to a host.
	swagger.Servers = nil

	router, err := gorillamux.NewRouter(swagger)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		MultiError:         false,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()
			if !strings.HasPrefix(req.URL.Path, apiPrefix) {
				return next(ctx)
			}

			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				code := http.StatusNotFound
				if errors.Is(err, routers.ErrMethodNotAllowed) {
					code = http.StatusMethodNotAllowed
				}
				return ctx.JSON(code, servers.Error{Code: int32(code), Message: err.Error()})
			}

			err = openapi3filter.ValidateRequest(req.Context(), &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			})
			if err != nil {
				return ctx.JSON(http.StatusBadRequest, servers.Error{
					Code:    http.StatusBadRequest,
					Message: validationMessage(err),
				})
			}

			return next(ctx)
		}
	}, nil
}

func validationMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Error()
	}
	return "Request does not match the API: " + err.Error()
}

// RequestMetrics reports every request to observer, keyed by its route
// template so that order IDs do not explode the label space.
func RequestMetrics(observer RequestObserver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()

			err := next(ctx)
			if err != nil {
				ctx.Error(err)
			}

			route := ctx.Path()
			if route == "" {
				route = "unmatched"
			}
			observer.ObserveHTTP(ctx.Request().Method, route, ctx.Response().Status, time.Since(start))

			return nil
		}
	}
}
