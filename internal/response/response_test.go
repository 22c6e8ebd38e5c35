package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/albretostimbung/naraicoderbe/internal/apperror"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h echo.HandlerFunc) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler
	e.GET("/", h)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestSuccessEnvelope(t *testing.T) {
	rec, body := serve(t, func(c echo.Context) error {
		return Created(c, "Event created successfully", map[string]int{"id": 1})
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, map[string]interface{}{
		"code": float64(201), "status": "success", "message": "Event created successfully",
	}, body["meta"])
	assert.Equal(t, map[string]interface{}{"id": float64(1)}, body["data"])
	assert.NotContains(t, body, "errors")
}

func TestDeleteCarriesNullData(t *testing.T) {
	_, body := serve(t, func(c echo.Context) error {
		return OK(c, "Event deleted successfully", nil)
	})

	assert.Contains(t, body, "data")
	assert.Nil(t, body["data"])
}

func TestErrorEnvelopeWithFieldErrors(t *testing.T) {
	rec, body := serve(t, func(c echo.Context) error {
		return apperror.FieldError("title", "The title field is required.")
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	meta := body["meta"].(map[string]interface{})
	assert.Equal(t, "error", meta["status"])
	assert.Equal(t, "Validation failed", meta["message"])
	assert.Equal(t, map[string]interface{}{"title": []interface{}{"The title field is required."}}, body["errors"])
}

func TestEchoErrorsUseEnvelope(t *testing.T) {
	rec, body := serve(t, func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", body["meta"].(map[string]interface{})["message"])
}

func TestUnknownErrorsAreHidden(t *testing.T) {
	rec, body := serve(t, func(c echo.Context) error {
		return errors.New("pq: password authentication failed")
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", body["meta"].(map[string]interface{})["message"])
}
