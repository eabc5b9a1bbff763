// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"
	"strconv"

	deliverycontext "lamsa/internal/delivery/context"
	"lamsa/internal/delivery/http/response"
	"lamsa/internal/domain/entity"
	"lamsa/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// actorFrom builds the usecase actor from the identity the auth middleware
// stored on the echo context.
func actorFrom(c echo.Context) usecase.Actor {
	return usecase.Actor{
		UserID: deliverycontext.GetUserID(c),
		Role:   entity.Role(deliverycontext.GetUserRole(c)),
	}
}

// pathUUID parses a UUID path parameter. The returned error carries the 400
// and is handled by the error middleware.
func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid '"+name+"' path parameter")
	}

	return id, nil
}

// queryBool parses an optional boolean query parameter. Absent or malformed
// values mean "not filtered".
func queryBool(c echo.Context, name string) *bool {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}

	return &v
}

// HealthCheck reports process liveness.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
