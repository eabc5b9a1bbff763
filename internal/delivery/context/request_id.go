package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// KeyRequestID is the key for storing request ID in context.
	KeyRequestID ContextKey = "request_id"

	// KeyLogger is the key for storing request-scoped logger in context.
	KeyLogger ContextKey = "logger"

	// KeyUserID is the key for storing the authenticated user's ID.
	KeyUserID ContextKey = "user_id"

	// KeyUserRole is the key for storing the authenticated user's role.
	KeyUserRole ContextKey = "user_role"

	// HeaderXRequestID is the HTTP header name for request ID.
	HeaderXRequestID = "X-Request-Id"
)

// GetRequestID extracts the request ID from echo.Context.
// If not found, generates a new UUID.
func GetRequestID(c echo.Context) string {
	val := c.Get(string(KeyRequestID))
	if id, ok := val.(string); ok && id != "" {
		return id
	}

	return uuid.New().String()
}

// SetRequestID sets the request ID in echo.Context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// GetRequestIDFromContext extracts the request ID from standard context.Context.
// If not found, returns empty string.
func GetRequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(KeyRequestID).(string); ok {
		return id
	}

	return ""
}

// WithRequestID returns a new context with the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// GetLogger extracts the request-scoped logger from context.Context.
// If not found, returns nil.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok {
		return logger
	}

	return nil
}

// GetLoggerOrDefault extracts the request-scoped logger from context.Context.
// If not found, returns the provided fallback logger.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

// WithLogger returns a new context with the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

// GetUserID extracts the authenticated user's ID from echo.Context.
// Returns uuid.Nil when the request is unauthenticated.
func GetUserID(c echo.Context) uuid.UUID {
	if id, ok := c.Get(string(KeyUserID)).(uuid.UUID); ok {
		return id
	}

	return uuid.Nil
}

// SetUserID sets the authenticated user's ID in echo.Context.
func SetUserID(c echo.Context, userID uuid.UUID) {
	c.Set(string(KeyUserID), userID)
}

// GetUserRole extracts the authenticated user's role from echo.Context.
func GetUserRole(c echo.Context) string {
	if role, ok := c.Get(string(KeyUserRole)).(string); ok {
		return role
	}

	return ""
}

// SetUserRole sets the authenticated user's role in echo.Context.
func SetUserRole(c echo.Context, role string) {
	c.Set(string(KeyUserRole), role)
}
