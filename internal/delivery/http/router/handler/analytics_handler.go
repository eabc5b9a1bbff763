package handler

import (
	"net/http"
	"time"

	deliverycontext "lamsa/internal/delivery/context"
	"lamsa/internal/delivery/http/response"
	"lamsa/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AnalyticsHandler holds dependencies for the owner dashboard handler.
type AnalyticsHandler struct {
	uc usecase.AnalyticsUsecase
}

// NewAnalyticsHandler is the constructor for AnalyticsHandler, injected by Fx.
func NewAnalyticsHandler(uc usecase.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// OwnerAnalytics returns one aggregate per salon the caller owns.
// Optional ?from= and ?to= bound the period (RFC 3339); the default is the
// trailing 30 days.
func (h *AnalyticsHandler) OwnerAnalytics(c echo.Context) error {
	var from, to time.Time

	if raw := c.QueryParam("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid 'from' query parameter, expected RFC 3339")
		}
		from = t
	}
	if raw := c.QueryParam("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid 'to' query parameter, expected RFC 3339")
		}
		to = t
	}

	analytics, err := h.uc.OwnerAnalytics(c.Request().Context(), deliverycontext.GetUserID(c), from, to)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, analytics, "Analytics computed successfully")
}
