package middleware

import (
	"github.com/albretostimbung/naraicoderbe/pkg/logger"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestIDMiddleware reuses or assigns a request id and binds it to the request logger
func RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(logger.RequestIDKey)
		if requestID == "" {
			requestID = uuid.New().String()
			c.Request().Header.Set(logger.RequestIDKey, requestID)
		}

		c.Set("request_id", requestID)
		c.Response().Header().Set(logger.RequestIDKey, requestID)

		logger.WithContext(c, logger.GetLogger().With(zap.String("request_id", requestID)))

		return next(c)
	}
}
