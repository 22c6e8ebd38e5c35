package handler_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/albretostimbung/naraicoderbe/internal/model"
	"github.com/albretostimbung/naraicoderbe/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventBody() map[string]interface{} {
	return map[string]interface{}{
		"title":                 "Go Workshop: Concurrency 101",
		"description":           "Goroutines and channels",
		"event_type":            "workshop",
		"status":                "published",
		"start_date":            "2030-01-10T09:00:00Z",
		"end_date":              "2030-01-10T17:00:00Z",
		"is_online":             true,
		"meeting_link":          "https://meet.example.com/go",
		"max_participants":      40,
		"registration_fee":      "150000",
		"registration_deadline": "2030-01-05",
	}
}

func TestCreateEventThenRead(t *testing.T) {
	f := setup(t)

	rec := testutil.Do(t, f.e, http.MethodPost, "/events", eventBody(), f.token)
	testutil.StatusIs(t, http.StatusCreated, rec)

	var created model.Event
	env := testutil.Decode(t, rec, &created)
	assert.Equal(t, "Event created successfully", env.Meta.Message)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "go-workshop-concurrency-101", created.Slug)
	assert.Equal(t, f.member.ID, created.OrganizerID)
	assert.Equal(t, f.member.ID, created.CreatedBy)
	assert.False(t, created.CreatedAt.IsZero())

	rec = testutil.Do(t, f.e, http.MethodGet, "/events/"+itoa(created.ID), nil, f.token)
	testutil.StatusIs(t, http.StatusOK, rec)

	var read model.Event
	env = testutil.Decode(t, rec, &read)
	assert.Equal(t, "Event retrieved successfully", env.Meta.Message)
	assert.Equal(t, "Go Workshop: Concurrency 101", read.Title)
	assert.Equal(t, "Goroutines and channels", *read.Description)
	assert.Equal(t, "workshop", read.EventType)
	assert.True(t, read.StartDate.Equal(time.Date(2030, 1, 10, 9, 0, 0, 0, time.UTC)))
	assert.True(t, read.EndDate.Equal(time.Date(2030, 1, 10, 17, 0, 0, 0, time.UTC)))
	assert.True(t, read.IsOnline)
	require.NotNil(t, read.MaxParticipants)
	assert.Equal(t, 40, *read.MaxParticipants)
	assert.InDelta(t, 150000, read.RegistrationFee, 0.001)
	require.NotNil(t, read.RegistrationDeadline)
	assert.True(t, read.RegistrationDeadline.Equal(time.Date(2030, 1, 5, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, created.Slug, read.Slug)
}

func TestCreateEventValidation(t *testing.T) {
	f := setup(t)

	tests := []struct {
		name  string
		patch map[string]interface{}
		field string
	}{
		{"end equals start", map[string]interface{}{"end_date": "2030-01-10T09:00:00Z"}, "end_date"},
		{"end before start", map[string]interface{}{"end_date": "2030-01-09"}, "end_date"},
		{"deadline after start", map[string]interface{}{"registration_deadline": "2030-01-11"}, "registration_deadline"},
		{"unknown type", map[string]interface{}{"event_type": "hackathon"}, "event_type"},
		{"negative fee", map[string]interface{}{"registration_fee": -1}, "registration_fee"},
		{"missing title", map[string]interface{}{"title": ""}, "title"},
		{"bad link", map[string]interface{}{"meeting_link": "meet"}, "meeting_link"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := eventBody()
			for k, v := range tt.patch {
				body[k] = v
			}

			rec := testutil.Do(t, f.e, http.MethodPost, "/events", body, f.token)
			testutil.StatusIs(t, http.StatusUnprocessableEntity, rec)
			env := testutil.Decode(t, rec, nil)
			assert.Equal(t, "Validation failed", env.Meta.Message)
			assert.Contains(t, env.Errors, tt.field)
		})
	}

	var count int64
	require.NoError(t, f.db.Model(&model.Event{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateEventSlugCollision(t *testing.T) {
	f := setup(t)

	rec := testutil.Do(t, f.e, http.MethodPost, "/events", eventBody(), f.token)
	testutil.StatusIs(t, http.StatusCreated, rec)

	body := eventBody()
	body["title"] = "go workshop concurrency 101!"
	rec = testutil.Do(t, f.e, http.MethodPost, "/events", body, f.token)
	testutil.StatusIs(t, http.StatusUnprocessableEntity, rec)
	assert.Equal(t, []string{"The title has already been taken."}, testutil.Decode(t, rec, nil).Errors["title"])
}

func TestUpdateEvent(t *testing.T) {
	f := setup(t)
	event := insertEvent(t, f.db, "Original Title", nil)

	rec := testutil.Do(t, f.e, http.MethodPatch, "/events/"+itoa(event.ID), map[string]interface{}{
		"title": "Renamed Meetup",
	}, f.token)
	testutil.StatusIs(t, http.StatusOK, rec)

	var updated model.Event
	env := testutil.Decode(t, rec, &updated)
	assert.Equal(t, "Event updated successfully", env.Meta.Message)
	assert.Equal(t, "renamed-meetup", updated.Slug)
	assert.Equal(t, "workshop", updated.EventType)
	assert.True(t, updated.StartDate.Equal(event.StartDate))

	// end_date alone is checked against the stored start_date
	rec = testutil.Do(t, f.e, http.MethodPut, "/events/"+itoa(event.ID), map[string]interface{}{
		"end_date": event.StartDate.Add(-time.Hour).Format(time.RFC3339),
	}, f.token)
	testutil.StatusIs(t, http.StatusUnprocessableEntity, rec)
	assert.Contains(t, testutil.Decode(t, rec, nil).Errors, "end_date")

	rec = testutil.Do(t, f.e, http.MethodPatch, "/events/"+itoa(event.ID), map[string]interface{}{
		"registration_deadline": event.StartDate.Add(time.Hour).Format(time.RFC3339),
	}, f.token)
	testutil.StatusIs(t, http.StatusUnprocessableEntity, rec)
	assert.Contains(t, testutil.Decode(t, rec, nil).Errors, "registration_deadline")

	var stored model.Event
	require.NoError(t, f.db.First(&stored, event.ID).Error)
	assert.True(t, stored.EndDate.Equal(event.EndDate))
	assert.Nil(t, stored.RegistrationDeadline)
}

func TestDeleteEvent(t *testing.T) {
	f := setup(t)
	event := insertEvent(t, f.db, "Short Lived", nil)

	rec := testutil.Do(t, f.e, http.MethodDelete, "/events/"+itoa(event.ID), nil, f.token)
	testutil.StatusIs(t, http.StatusOK, rec)
	env := testutil.Decode(t, rec, nil)
	assert.Equal(t, "Event deleted successfully", env.Meta.Message)
	assert.Equal(t, "null", string(env.Data))

	rec = testutil.Do(t, f.e, http.MethodGet, "/events/"+itoa(event.ID), nil, f.token)
	testutil.StatusIs(t, http.StatusNotFound, rec)
	assert.Equal(t, "Event not found", testutil.Decode(t, rec, nil).Meta.Message)

	rec = testutil.Do(t, f.e, http.MethodGet, "/events/abc", nil, f.token)
	testutil.StatusIs(t, http.StatusNotFound, rec)
}

func TestListEventsPagination(t *testing.T) {
	f := setup(t)
	for i := 1; i <= 12; i++ {
		insertEvent(t, f.db, fmt.Sprintf("Event %02d", i), nil)
	}

	rec := testutil.Do(t, f.e, http.MethodGet, "/events?per_page=5", nil, f.token)
	testutil.StatusIs(t, http.StatusOK, rec)

	var first page[model.Event]
	env := testutil.Decode(t, rec, &first)
	assert.Equal(t, "Events retrieved successfully", env.Meta.Message)
	assert.Len(t, first.Data, 5)
	assert.Equal(t, 3, first.LastPage)
	assert.Equal(t, int64(12), first.Total)
	assert.Equal(t, 5, first.PerPage)
	assert.Equal(t, "Event 12", first.Data[0].Title)
	require.NotNil(t, first.NextPageURL)
	assert.Contains(t, *first.NextPageURL, "page=2")
	assert.Contains(t, *first.NextPageURL, "per_page=5")
	assert.Nil(t, first.PrevPageURL)

	rec = testutil.Do(t, f.e, http.MethodGet, "/events?per_page=5&page=3", nil, f.token)
	testutil.StatusIs(t, http.StatusOK, rec)

	var last page[model.Event]
	testutil.Decode(t, rec, &last)
	assert.Len(t, last.Data, 2)
	require.NotNil(t, last.From)
	assert.Equal(t, 11, *last.From)
	assert.Nil(t, last.NextPageURL)
}

func TestListEventsQuery(t *testing.T) {
	f := setup(t)
	insertEvent(t, f.db, "Rust Bootcamp", nil)
	insertEvent(t, f.db, "Go Meetup", nil)
	draft := insertEvent(t, f.db, "Draft Seminar", nil)
	require.NoError(t, f.db.Model(draft).Update("status", "draft").Error)

	var result page[model.Event]

	rec := testutil.Do(t, f.e, http.MethodGet, "/events?search=MEETUP", nil, f.token)
	testutil.StatusIs(t, http.StatusOK, rec)
	testutil.Decode(t, rec, &result)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "Go Meetup", result.Data[0].Title)

	rec = testutil.Do(t, f.e, http.MethodGet, "/events?status=draft", nil, f.token)
	testutil.StatusIs(t, http.StatusOK, rec)
	testutil.Decode(t, rec, &result)
	require.Len(t, result.Data, 1)
	assert.Equal(t, "Draft Seminar", result.Data[0].Title)

	rec = testutil.Do(t, f.e, http.MethodGet, "/events?sort_by=title&sort_order=asc", nil, f.token)
	testutil.StatusIs(t, http.StatusOK, rec)
	testutil.Decode(t, rec, &result)
	require.Len(t, result.Data, 3)
	assert.Equal(t, "Draft Seminar", result.Data[0].Title)
	assert.Equal(t, "Rust Bootcamp", result.Data[2].Title)

	rec = testutil.Do(t, f.e, http.MethodGet, "/events?sort_by=password", nil, f.token)
	testutil.StatusIs(t, http.StatusUnprocessableEntity, rec)
	assert.Equal(t, []string{"The selected sort by is invalid."}, testutil.Decode(t, rec, nil).Errors["sort_by"])

	rec = testutil.Do(t, f.e, http.MethodGet, "/events?sort_order=sideways", nil, f.token)
	testutil.StatusIs(t, http.StatusUnprocessableEntity, rec)
	assert.Contains(t, testutil.Decode(t, rec, nil).Errors, "sort_order")
}

func TestListEventsRequiresToken(t *testing.T) {
	f := setup(t)

	rec := testutil.Do(t, f.e, http.MethodGet, "/events", nil, "")
	testutil.StatusIs(t, http.StatusUnauthorized, rec)
}

func TestListEventsPageBeyondRange(t *testing.T) {
	f := setup(t)
	for _, title := range []string{"Event A", "Event B", "Event C"} {
		insertEvent(t, f.db, title, nil)
	}

	rec := testutil.Do(t, f.e, http.MethodGet, "/events?page=9223372036854775807&per_page=100", nil, f.token)
	testutil.StatusIs(t, http.StatusOK, rec)

	var events page[model.Event]
	testutil.Decode(t, rec, &events)
	assert.Equal(t, 21474836, events.CurrentPage)
	assert.Empty(t, events.Data)
	assert.Nil(t, events.From)
	assert.Equal(t, int64(3), events.Total)
}

func TestCreateEventTitleWithoutSlug(t *testing.T) {
	f := setup(t)
	body := eventBody()
	body["title"] = "!!!"

	rec := testutil.Do(t, f.e, http.MethodPost, "/events", body, f.token)
	testutil.StatusIs(t, http.StatusUnprocessableEntity, rec)
	assert.Equal(t, []string{"The title must contain at least one letter or number."}, testutil.Decode(t, rec, nil).Errors["title"])
}
