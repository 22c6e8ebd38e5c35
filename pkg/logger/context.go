package logger

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	// RequestIDKey is the header carrying the request id
	RequestIDKey = "X-Request-ID"

	contextKey = "logger"
)

// FromContext retrieves the request logger from echo.Context
func FromContext(c echo.Context) *zap.Logger {
	if logger, ok := c.Get(contextKey).(*zap.Logger); ok {
		return logger
	}

	requestID := c.Request().Header.Get(RequestIDKey)
	if requestID == "" {
		requestID = "unknown"
	}

	return GetLogger().With(zap.String("request_id", requestID))
}

// WithContext stores the request logger on echo.Context
func WithContext(c echo.Context, logger *zap.Logger) {
	c.Set(contextKey, logger)
}
