// Package middleware contains the HTTP API middlewares.
package middleware

import (
	"strings"

	deliverycontext "lamsa/internal/delivery/context"
	"lamsa/internal/delivery/http/response"
	"lamsa/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer access token and threads the caller's
// identity through the request context. No session state is kept server-side.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "UNAUTHENTICATED", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "UNAUTHENTICATED", "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.ValidateAccessToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "UNAUTHENTICATED", "Invalid or expired token")
		}

		// Set user info on the context for handlers to use
		deliverycontext.SetUserID(c, claims.UserID)
		deliverycontext.SetUserRole(c, claims.Role)

		return next(c)
	}
}

// RequireRole is a middleware factory that checks if the user has a specific role.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if deliverycontext.GetUserRole(c) != requiredRole {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: require '"+requiredRole+"' role")
			}

			return next(c)
		}
	}
}
