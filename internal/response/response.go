// Package response writes the JSON envelope shared by every endpoint.
package response

import (
	"errors"
	"net/http"

	"github.com/albretostimbung/naraicoderbe/internal/apperror"
	"github.com/albretostimbung/naraicoderbe/internal/validation"
	"github.com/albretostimbung/naraicoderbe/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Status labels
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Meta describes the outcome of a request
type Meta struct {
	Code    int    `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Envelope wraps every response body
type Envelope struct {
	Meta   Meta              `json:"meta"`
	Data   interface{}       `json:"data"`
	Errors validation.Errors `json:"errors,omitempty"`
}

// Success writes data with a success meta block
func Success(c echo.Context, code int, message string, data interface{}) error {
	return c.JSON(code, Envelope{
		Meta: Meta{Code: code, Status: StatusSuccess, Message: message},
		Data: data,
	})
}

// OK writes a 200 success
func OK(c echo.Context, message string, data interface{}) error {
	return Success(c, http.StatusOK, message, data)
}

// Created writes a 201 success
func Created(c echo.Context, message string, data interface{}) error {
	return Success(c, http.StatusCreated, message, data)
}

// Error writes err as an error envelope
func Error(c echo.Context, err error) error {
	appErr := apperror.From(err)
	return c.JSON(appErr.Code, Envelope{
		Meta:   Meta{Code: appErr.Code, Status: StatusError, Message: appErr.Message},
		Errors: appErr.Errors,
	})
}

// HTTPErrorHandler renders errors returned from handlers and middleware in the envelope
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr *apperror.AppError
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		msg := http.StatusText(httpErr.Code)
		if m, ok := httpErr.Message.(string); ok && httpErr.Code < http.StatusInternalServerError {
			msg = m
		}
		appErr = apperror.New(httpErr.Code, msg)
	} else {
		appErr = apperror.From(err)
	}

	if appErr.Code >= http.StatusInternalServerError {
		logger.FromContext(c).Error("Request failed", zap.Error(err))
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(appErr.Code)
		return
	}
	_ = Error(c, appErr)
}
