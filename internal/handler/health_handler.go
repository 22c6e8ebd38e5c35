package handler

import (
	"net/http"
	"time"

	"github.com/albretostimbung/naraicoderbe/pkg/database"
	"github.com/albretostimbung/naraicoderbe/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HealthCheck reports liveness; ?check=db also pings the database
func HealthCheck(c echo.Context) error {
	log := logger.FromContext(c)

	body := map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	}

	if c.QueryParam("check") == "db" {
		sqlDB, err := database.GetDB().DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request().Context())
		}
		if err != nil {
			log.Error("Database health check failed", zap.Error(err))
			body["status"] = "error"
			body["db_status"] = "error"
			return c.JSON(http.StatusInternalServerError, body)
		}
		body["db_status"] = "ok"
	}

	return c.JSON(http.StatusOK, body)
}
