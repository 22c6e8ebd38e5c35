package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/albretostimbung/naraicoderbe/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	f := setup(t)

	rec := testutil.Do(t, f.e, http.MethodGet, "/health", nil, "")
	testutil.StatusIs(t, http.StatusOK, rec)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["time"])
	assert.NotContains(t, body, "db_status")

	rec = testutil.Do(t, f.e, http.MethodGet, "/health?check=db", nil, "")
	testutil.StatusIs(t, http.StatusOK, rec)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["db_status"])
}

func TestHealthCheckReportsDatabaseFailure(t *testing.T) {
	f := setup(t)

	sqlDB, err := f.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	rec := testutil.Do(t, f.e, http.MethodGet, "/health?check=db", nil, "")
	testutil.StatusIs(t, http.StatusInternalServerError, rec)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body["db_status"])
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	f := setup(t)

	rec := testutil.Do(t, f.e, http.MethodGet, "/nowhere", nil, "")
	testutil.StatusIs(t, http.StatusNotFound, rec)
}
