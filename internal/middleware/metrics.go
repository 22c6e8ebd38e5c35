package middleware

import (
	"strconv"
	"time"

	"github.com/albretostimbung/naraicoderbe/prometheus"
	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records request count and duration per route
func MetricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)

		duration := time.Since(start).Seconds()

		method := c.Request().Method
		path := c.Path()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Response().Status)

		prometheus.HttpRequestsTotal.WithLabelValues(method, path, status).Inc()
		prometheus.HttpRequestDuration.WithLabelValues(method, path, status).Observe(duration)

		return err
	}
}
