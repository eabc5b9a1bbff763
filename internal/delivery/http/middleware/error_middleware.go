package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"lamsa/config"
	"lamsa/internal/delivery/http/response"
	domainerrors "lamsa/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware maps errors escaping the handlers to the JSON envelope.
type ErrorMiddleware struct {
	logger *slog.Logger
	debug  bool
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger, cfg *config.Config) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
		debug:  cfg.Env.Debug,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	// Application errors carry their own HTTP mapping
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		details := appErr.Details()
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			m.logger.Error("Request failed",
				slog.String("path", c.Request().URL.Path),
				slog.String("method", c.Request().Method),
				slog.Any("error", err),
			)
			// 500 details leave the process only in debug builds
			if !m.debug {
				details = ""
			}
		}

		_ = response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), details)

		return
	}

	// Echo's own errors (404 route miss, binding, validation)
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := fmt.Sprintf("%v", httpErr.Message)
		_ = response.Error(c, httpErr.Code, "HTTP_ERROR", message, "")

		return
	}

	// Anything else is an internal error; log it and redact outside debug
	m.logger.Error("Unhandled error",
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
		slog.Any("error", err),
	)

	details := ""
	if m.debug {
		details = err.Error()
	}
	_ = response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", details)
}
