package http

import (
	"errors"
	"net/http"
	"strings"

	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/stock"
	"fulfillment/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// fail writes err as an Error response with the status its kind maps to.
// Unexpected errors are logged and answered without detail.
func (s *Server) fail(c echo.Context, err error) error {
	body := errorBody(err)
	if body.Code == http.StatusInternalServerError {
		s.log.WithError(err).
			WithField("method", c.Request().Method).
			WithField("path", c.Path()).
			Error("request failed")
	}
	return c.JSON(body.Code, body)
}

func errorBody(err error) Error {
	var (
		shortfall *stock.InsufficientStockError
		fieldErrs validator.ValidationErrors
		httpErr   *echo.HTTPError
	)

	switch {
	case errors.As(err, &shortfall):
		return Error{
			Code:       http.StatusConflict,
			Message:    stock.ErrInsufficientStock.Error(),
			Violations: newViolations(shortfall.Violations),
		}
	case errors.Is(err, stock.ErrProductUnavailable),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrRefundWindowExpired):
		return Error{Code: http.StatusConflict, Message: err.Error()}
	case errors.Is(err, cart.ErrCartIsEmpty):
		return Error{Code: http.StatusUnprocessableEntity, Message: "cart is empty"}
	case errors.Is(err, order.ErrNotOwner):
		return Error{Code: http.StatusForbidden, Message: err.Error()}
	case errors.Is(err, errs.ErrObjectNotFound):
		return Error{Code: http.StatusNotFound, Message: err.Error()}
	case errs.IsRetryable(err):
		return Error{
			Code:      http.StatusServiceUnavailable,
			Message:   "the operation conflicted with a concurrent change, retry it",
			Retryable: true,
		}
	case errors.As(err, &fieldErrs):
		return Error{Code: http.StatusBadRequest, Message: describeFieldErrors(fieldErrs)}
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return Error{Code: http.StatusBadRequest, Message: err.Error()}
	case errors.As(err, &httpErr):
		return Error{Code: httpErr.Code, Message: http.StatusText(httpErr.Code)}
	default:
		return Error{Code: http.StatusInternalServerError, Message: http.StatusText(http.StatusInternalServerError)}
	}
}

func describeFieldErrors(fieldErrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fe.Namespace()+" failed "+fe.Tag())
	}
	return "invalid request: " + strings.Join(parts, ", ")
}
