package http

import (
	"errors"
	"net/http"

	"orders/internal/core/domain/model/order"
	"orders/internal/generated/servers"
	"orders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// statusOf maps an application error to its HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, order.ErrOrderIsNotPersisted):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConstraintViolation):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as an Error body. Server faults are logged and their
// details are not sent to the client.
func (s *Server) writeError(ctx echo.Context, err error) error {
	status := statusOf(err)
	message := err.Error()

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.Error(err),
			zap.String("method", ctx.Request().Method),
			zap.String("path", ctx.Path()),
		)
		message = http.StatusText(status)
	}

	return ctx.JSON(status, servers.Error{
		Code:    status,
		Message: message,
	})
}

// httpErrorHandler renders echo's own errors (unknown routes, bad path
// parameters, recovered panics) in the Error format.
func httpErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := http.StatusText(status)

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Code
			if msg, ok := httpErr.Message.(string); ok {
				message = msg
			}
		} else {
			logger.Error("unhandled error", zap.Error(err), zap.String("path", ctx.Path()))
		}

		if writeErr := ctx.JSON(status, servers.Error{Code: status, Message: message}); writeErr != nil {
			logger.Warn("write error response", zap.Error(writeErr))
		}
	}
}
