// Package testutil builds an isolated database and HTTP server for tests.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/albretostimbung/naraicoderbe/internal/cache"
	"github.com/albretostimbung/naraicoderbe/internal/middleware"
	"github.com/albretostimbung/naraicoderbe/internal/model"
	"github.com/albretostimbung/naraicoderbe/internal/router"
	"github.com/albretostimbung/naraicoderbe/pkg/database"
	"github.com/albretostimbung/naraicoderbe/pkg/jwtutil"
	"github.com/albretostimbung/naraicoderbe/pkg/logger"
	"github.com/albretostimbung/naraicoderbe/prometheus"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Password is the plain password of every fixture user
const Password = "password123"

// Setup installs a fresh in-memory database and the process-wide dependencies
func Setup(t *testing.T) *gorm.DB {
	t.Helper()

	logger.SetLogger(zap.NewNop())
	prometheus.InitMetrics("naraicoderbe_test")
	jwtutil.Initialize(&jwtutil.Config{
		SigningKey:      "test-signing-key",
		ExpirationHours: 1,
		Issuer:          "naraicoderbe-test",
	})
	cache.Initialize(time.Minute)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := database.Open(sqlite.Open(dsn), gormlogger.Silent)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.MigrateModels(model.All()...))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

// Server returns the application router
func Server(t *testing.T) *echo.Echo {
	t.Helper()
	return router.New()
}

// CreateUser inserts an active user. Role defaults to member.
func CreateUser(t *testing.T, db *gorm.DB, email string, role string) *model.User {
	t.Helper()

	if role == "" {
		role = model.RoleMember
	}
	user := &model.User{
		Name:     "User " + email,
		Email:    email,
		IsActive: true,
		Role:     role,
	}
	require.NoError(t, user.SetPassword(Password))
	require.NoError(t, db.Create(user).Error)
	return user
}

// Token issues a bearer token for user
func Token(t *testing.T, db *gorm.DB, user *model.User) string {
	t.Helper()

	token, _, err := middleware.IssueToken(context.Background(), db, user, "test")
	require.NoError(t, err)
	return token
}

// Do sends a JSON request through e. body may be nil, a string or any JSON-encodable value.
func Do(t *testing.T, e *echo.Echo, method, target string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// Envelope is the decoded response body
type Envelope struct {
	Meta struct {
		Code    int    `json:"code"`
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"meta"`
	Data   json.RawMessage     `json:"data"`
	Errors map[string][]string `json:"errors"`
}

// Decode parses the envelope and, when data is non-nil, its data field
func Decode(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) Envelope {
	t.Helper()

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data), string(env.Data))
	}
	return env
}

// StatusIs fails the test with the body when rec has an unexpected code
func StatusIs(t *testing.T, want int, rec *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, want, rec.Code, rec.Body.String())
}

