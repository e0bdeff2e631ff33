package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	escrowhttp "escrow/internal/adapters/in/http"
	"escrow/internal/api/servers"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRequestValidator(t *testing.T) {
	swagger, err := servers.GetSwagger()
	require.NoError(t, err)
	validator, err := escrowhttp.RequestValidator(swagger)
	require.NoError(t, err)

	e := echo.New()
	e.Use(validator)
	e.GET("/health", func(c echo.Context) error { return c.String(http.StatusOK, "Healthy") })

	t.Run("should let non API paths through", func(t *testing.T) {
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("should answer 404 for an unknown API path", func(t *testing.T) {
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("should answer 405 for a known path with a wrong method", func(t *testing.T) {
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/escrow/balance", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestRequestMetrics(t *testing.T) {
	observer := &MockRequestObserver{}
	observer.On("ObserveHTTP", http.MethodGet, "/api/v1/orders/:orderId", http.StatusTeapot, mock.Anything).Once()

	e := echo.New()
	e.Use(escrowhttp.RequestMetrics(observer))
	e.GET("/api/v1/orders/:orderId", func(c echo.Context) error { return c.NoContent(http.StatusTeapot) })
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/orders/order_1", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	observer.AssertExpectations(t)
}
