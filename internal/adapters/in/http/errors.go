package http

import (
	"errors"
	"net/http"

	"deliverus/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// statusOf maps error kinds to status codes. Errors of no known kind are 500.
func statusOf(err error) int {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, errs.ErrValidation),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func errorBody(err error, status int) Error {
	body := Error{Code: status, Message: err.Error()}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		body.Message = http.StatusText(status)
		if msg, ok := httpErr.Message.(string); ok {
			body.Message = msg
		}
	}

	var verr *errs.ValidationError
	if errors.As(err, &verr) {
		body.Message = "validation failed"
		for _, v := range verr.Violations {
			body.Violations = append(body.Violations, Violation{Field: v.Field, Message: v.Message})
		}
	}

	if status == http.StatusInternalServerError {
		body.Message = "internal server error"
	}
	return body
}

// NewErrorHandler renders handler errors as Error bodies. Server failures are
// logged with their cause, which is never sent to the client.
func NewErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := statusOf(err)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.Error(err))
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, errorBody(err, status))
		}
		if writeErr != nil {
			logger.Warn("error response was not written", zap.Error(writeErr))
		}
	}
}
