package http

import (
	"errors"
	"net/http"

	"eventrent/internal/core/domain/services"
	"eventrent/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps core errors onto HTTP status codes.
func statusFor(err error) int {
	var availErr *services.AvailabilityError
	switch {
	case errors.As(err, &availErr):
		return http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition), errors.Is(err, errs.ErrConcurrentModification):
		return http.StatusConflict
	case errs.IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an Error body. Internal errors are logged and their text
// is not exposed.
func fail(ctx echo.Context, err error) error {
	code := statusFor(err)
	body := Error{Code: code, Message: err.Error()}

	var availErr *services.AvailabilityError
	if errors.As(err, &availErr) {
		body.Message = services.ErrInsufficientAvailability.Error()
		body.Details = shortfallsFrom(availErr.Shortfalls)
	}
	if code == http.StatusInternalServerError {
		ctx.Logger().Error(err)
		body.Message = http.StatusText(code)
	}
	return ctx.JSON(code, body)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
