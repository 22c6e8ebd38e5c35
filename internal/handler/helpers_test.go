package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/albretostimbung/naraicoderbe/internal/model"
	"github.com/albretostimbung/naraicoderbe/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type page[T any] struct {
	CurrentPage int     `json:"current_page"`
	Data        []T     `json:"data"`
	From        *int    `json:"from"`
	To          *int    `json:"to"`
	LastPage    int     `json:"last_page"`
	PerPage     int     `json:"per_page"`
	Total       int64   `json:"total"`
	NextPageURL *string `json:"next_page_url"`
	PrevPageURL *string `json:"prev_page_url"`
	Links       []struct {
		URL    *string `json:"url"`
		Label  string  `json:"label"`
		Active bool    `json:"active"`
	} `json:"links"`
}

type fixture struct {
	db     *gorm.DB
	e      *echo.Echo
	member *model.User
	admin  *model.User
	token  string
}

func setup(t *testing.T) *fixture {
	t.Helper()

	db := testutil.Setup(t)
	member := testutil.CreateUser(t, db, "member@example.com", model.RoleMember)
	admin := testutil.CreateUser(t, db, "admin@example.com", model.RoleAdmin)

	return &fixture{
		db:     db,
		e:      testutil.Server(t),
		member: member,
		admin:  admin,
		token:  testutil.Token(t, db, member),
	}
}

func insertEvent(t *testing.T, db *gorm.DB, title string, deadline *time.Time) *model.Event {
	t.Helper()

	start := time.Now().UTC().Add(30 * 24 * time.Hour).Truncate(time.Second)
	event := &model.Event{
		Title:                title,
		EventType:            "workshop",
		Status:               "published",
		StartDate:            start,
		EndDate:              start.Add(8 * time.Hour),
		RegistrationDeadline: deadline,
	}
	require.NoError(t, db.Create(event).Error)
	return event
}

func ptr[T any](v T) *T {
	return &v
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// getWithAuthorization sends a GET with a raw Authorization header
func getWithAuthorization(f *fixture, target, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}
