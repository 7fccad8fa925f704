package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"pickdrop/internal/core/application/orderflow"
	"pickdrop/internal/core/domain/services"
	"pickdrop/internal/core/ports"
	"pickdrop/internal/pkg/errs"
)

// statusFor maps the core error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, orderflow.ErrPaymentFailed):
		return http.StatusPaymentRequired
	case errors.Is(err, errs.ErrValidationFailed),
		errors.Is(err, services.ErrSameEndpoint),
		errors.Is(err, services.ErrUnknownPoint):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrIllegalTransition),
		errors.Is(err, ports.ErrTrackingNumberTaken):
		return http.StatusConflict
	case errors.Is(err, errs.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c echo.Context, err error) error {
	code := statusFor(err)
	body := Error{Code: code, Message: err.Error()}

	var failed *errs.ValidationFailedError
	if errors.As(err, &failed) {
		body.Fields = failed.Fields
	}

	var payment *orderflow.PaymentFailedError
	if errors.As(err, &payment) {
		body.Reason = payment.Reason
		body.Retryable = payment.Retryable()
	}

	if code == http.StatusInternalServerError {
		c.Logger().Error(err)
		body.Message = http.StatusText(code)
	}

	return c.JSON(code, body)
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}
