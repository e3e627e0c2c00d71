package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/stock"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestErrorBody(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		code      int
		retryable bool
	}{
		{"insufficient stock", &stock.InsufficientStockError{}, http.StatusConflict, false},
		{"product unavailable", stock.NewProductUnavailableError(kernel.NewUUID()), http.StatusConflict, false},
		{"invalid transition", &order.InvalidTransitionError{}, http.StatusConflict, false},
		{"refund window", &order.RefundWindowExpiredError{}, http.StatusConflict, false},
		{"empty cart", cart.ErrCartIsEmpty, http.StatusUnprocessableEntity, false},
		{"not owner", &order.NotOwnerError{}, http.StatusForbidden, false},
		{"order not found", order.NewOrderNotFoundError(kernel.NewUUID()), http.StatusNotFound, false},
		{"abort", errs.NewTransactionAbortError("commit", errors.New("deadlock")), http.StatusServiceUnavailable, true},
		{"wrapped abort", fmt.Errorf("checkout: %w", errs.NewTransactionAbortError("debit", nil)), http.StatusServiceUnavailable, true},
		{"invalid value", errs.NewValueIsInvalidError("reason"), http.StatusBadRequest, false},
		{"out of range", errs.NewValueIsOutOfRangeError("limit", 0, 1, 100), http.StatusBadRequest, false},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := errorBody(tt.err)
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.retryable, body.Retryable)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestErrorBody_UnexpectedErrorsHideDetail(t *testing.T) {
	body := errorBody(errors.New("password=hunter2"))
	assert.NotContains(t, body.Message, "hunter2")
}

func TestOpenAPIPath(t *testing.T) {
	assert.Equal(t, "/api/v1/orders/{orderId}/items/{itemId}/ship",
		openAPIPath("/api/v1/orders/:orderId/items/:itemId/ship"))
	assert.Equal(t, "/health", openAPIPath("/health"))
}

func TestLoadOpenAPI(t *testing.T) {
	doc, err := LoadOpenAPI(t.Context())
	assert.NoError(t, err)
	if assert.NotNil(t, doc) {
		assert.NotNil(t, doc.Paths.Find("/api/v1/orders/{orderId}/items/{itemId}/refund/resolve"))
	}
}
