package handler

import (
	"strings"
	"time"

	"github.com/albretostimbung/naraicoderbe/internal/apperror"
	"github.com/albretostimbung/naraicoderbe/internal/model"
	"github.com/albretostimbung/naraicoderbe/internal/policy"
	"github.com/albretostimbung/naraicoderbe/internal/query"
	"github.com/albretostimbung/naraicoderbe/internal/response"
	"github.com/albretostimbung/naraicoderbe/internal/validation"
	"github.com/albretostimbung/naraicoderbe/pkg/logger"
	"github.com/albretostimbung/naraicoderbe/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var eventQuery = query.Options{
	Filters: []query.Filter{
		{Param: "status", Column: "status"},
		{Param: "event_type", Column: "event_type"},
	},
	SearchColumns: []string{"title", "description"},
	SortColumns:   []string{"created_at", "updated_at", "title", "start_date", "end_date", "registration_fee", "status", "event_type"},
}

var eventRules = validation.Rules{
	"title":                 {"required", "string", "max:255"},
	"description":           {"nullable", "string"},
	"content":               {"nullable", "string"},
	"featured_image":        {"nullable", "string"},
	"event_type":            {"required", "in:" + strings.Join(model.EventTypes, ",")},
	"status":                {"required", "in:" + strings.Join(model.EventStatuses, ",")},
	"start_date":            {"required", "date"},
	"end_date":              {"required", "date", "after:start_date"},
	"location":              {"nullable", "string"},
	"is_online":             {"boolean"},
	"meeting_link":          {"nullable", "string", "url"},
	"max_participants":      {"nullable", "integer", "min:1"},
	"registration_fee":      {"required", "numeric", "min:0"},
	"registration_deadline": {"nullable", "date", "before:start_date"},
}

var eventUpdateRules = withSometimes(eventRules)

func applyEvent(e *model.Event, data validation.Data) {
	if data.Has("title") {
		e.Title = data.String("title")
	}
	if data.Has("description") {
		e.Description = data.StringPtr("description")
	}
	if data.Has("content") {
		e.Content = data.StringPtr("content")
	}
	if data.Has("featured_image") {
		e.FeaturedImage = data.StringPtr("featured_image")
	}
	if data.Has("event_type") {
		e.EventType = data.String("event_type")
	}
	if data.Has("status") {
		e.Status = data.String("status")
	}
	if data.Has("start_date") {
		e.StartDate = data.Time("start_date")
	}
	if data.Has("end_date") {
		e.EndDate = data.Time("end_date")
	}
	if data.Has("location") {
		e.Location = data.StringPtr("location")
	}
	if data.Has("is_online") {
		e.IsOnline = data.Bool("is_online")
	}
	if data.Has("meeting_link") {
		e.MeetingLink = data.StringPtr("meeting_link")
	}
	if data.Has("max_participants") {
		e.MaxParticipants = data.IntPtr("max_participants")
	}
	if data.Has("registration_fee") {
		e.RegistrationFee = data.Float("registration_fee")
	}
	if data.Has("registration_deadline") {
		e.RegistrationDeadline = data.TimePtr("registration_deadline")
	}
}

// checkEventDates enforces date ordering on the merged record
func checkEventDates(e *model.Event) validation.Errors {
	errs := validation.Errors{}
	if !e.EndDate.After(e.StartDate) {
		errs.Add("end_date", "The end date field must be a date after start date.")
	}
	if e.RegistrationDeadline != nil && !e.RegistrationDeadline.Before(e.StartDate) {
		errs.Add("registration_deadline", "The registration deadline field must be a date before start date.")
	}
	return errs
}

func findEvent(tx *gorm.DB, id uint, preloads ...string) (*model.Event, error) {
	var event model.Event
	for _, p := range preloads {
		tx = tx.Preload(p)
	}
	if err := tx.First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// saveEvent writes e after checking its slug is free
func saveEvent(tx *gorm.DB, e *model.Event) error {
	if err := checkSlug(tx, &model.Event{}, "title", e.Title, e.ID); err != nil {
		return err
	}
	return tx.Save(e).Error
}

// ListEvents lists events with their registrations
func ListEvents(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackDBOperation("list_events")(time.Now())
	page, err := query.Paginate[model.Event](db(c), eventQuery, c.QueryParams(), listURL(c), "EventRegistrations")
	if err != nil {
		return failure(c, err, "Event", "Failed to list events")
	}

	log.Info("Events listed", zap.Int64("total", page.Total), zap.Int("page", page.CurrentPage))
	prometheus.RecordResourceOperation("event", "list")
	return response.OK(c, "Events retrieved successfully", page)
}

// CreateEvent creates an event organised by the caller
func CreateEvent(c echo.Context) error {
	log := logger.FromContext(c)

	data, err := validateRequest(c, eventRules)
	if err != nil {
		return err
	}

	actor, _ := policy.FromContext(c)
	event := model.Event{
		Status:      "draft",
		OrganizerID: actor.UserID,
		CreatedBy:   actor.UserID,
	}
	applyEvent(&event, data)

	defer prometheus.TrackDBOperation("create_event")(time.Now())
	if err := saveEvent(db(c), &event); err != nil {
		return failure(c, err, "Event", "Failed to create event")
	}

	created, err := findEvent(db(c), event.ID, "EventRegistrations")
	if err != nil {
		return failure(c, err, "Event", "Failed to load created event")
	}

	log.Info("Event created", zap.Uint("event_id", created.ID), zap.String("slug", created.Slug))
	prometheus.RecordResourceOperation("event", "create")
	return response.Created(c, "Event created successfully", created)
}

// GetEvent returns one event with its registrations
func GetEvent(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c, "Event")
	if err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("get_event")(time.Now())
	event, err := findEvent(db(c), id, "EventRegistrations")
	if err != nil {
		return failure(c, err, "Event", "Failed to get event")
	}

	log.Info("Event retrieved", zap.Uint("event_id", event.ID))
	prometheus.RecordResourceOperation("event", "get")
	return response.OK(c, "Event retrieved successfully", event)
}

// UpdateEvent applies a partial update
func UpdateEvent(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c, "Event")
	if err != nil {
		return err
	}

	event, err := findEvent(db(c), id)
	if err != nil {
		return failure(c, err, "Event", "Failed to get event")
	}

	data, err := validateRequest(c, eventUpdateRules)
	if err != nil {
		return err
	}

	applyEvent(event, data)
	if errs := checkEventDates(event); len(errs) > 0 {
		log.Warn("Merged event dates are inconsistent", zap.Uint("event_id", id))
		return apperror.Validation(errs)
	}

	defer prometheus.TrackDBOperation("update_event")(time.Now())
	if err := saveEvent(db(c), event); err != nil {
		return failure(c, err, "Event", "Failed to update event")
	}

	updated, err := findEvent(db(c), id, "EventRegistrations")
	if err != nil {
		return failure(c, err, "Event", "Failed to load updated event")
	}

	log.Info("Event updated", zap.Uint("event_id", id))
	prometheus.RecordResourceOperation("event", "update")
	return response.OK(c, "Event updated successfully", updated)
}

// DeleteEvent removes an event and, by cascade, its registrations
func DeleteEvent(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c, "Event")
	if err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("delete_event")(time.Now())
	event, err := findEvent(db(c), id)
	if err != nil {
		return failure(c, err, "Event", "Failed to get event")
	}

	if err := db(c).Delete(event).Error; err != nil {
		return failure(c, err, "Event", "Failed to delete event")
	}

	log.Info("Event deleted", zap.Uint("event_id", id))
	prometheus.RecordResourceOperation("event", "delete")
	return response.OK(c, "Event deleted successfully", nil)
}

// ListEventRegistrationsForEvent lists the registrations of one event
func ListEventRegistrationsForEvent(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c, "Event")
	if err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("list_event_registrations")(time.Now())
	if _, err := findEvent(db(c), id); err != nil {
		return failure(c, err, "Event", "Failed to get event")
	}

	page, err := query.Paginate[model.EventRegistration](
		db(c).Where("event_id = ?", id), nestedRegistrationQuery, c.QueryParams(), listURL(c), "User")
	if err != nil {
		return failure(c, err, "Registration", "Failed to list event registrations")
	}

	log.Info("Event registrations listed", zap.Uint("event_id", id), zap.Int64("total", page.Total))
	prometheus.RecordResourceOperation("event", "list_registrations")
	return response.OK(c, "Event registrations retrieved successfully", page)
}
