package handler

import (
	"errors"
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

// ErrDeadlinePassed is returned when registration closes before the insert lands
var ErrDeadlinePassed = errors.New("registration deadline has passed")

var registrationQuery = query.Options{
	Filters: []query.Filter{
		{Param: "event_id", Column: "event_id", Kind: query.Int},
		{Param: "user_id", Column: "user_id", Kind: query.Int},
	},
	SortColumns: []string{"created_at", "registered_at", "event_id", "user_id"},
}

// nestedRegistrationQuery serves the per-event and per-user listings
var nestedRegistrationQuery = query.Options{
	SortColumns: []string{"created_at", "registered_at"},
}

var registrationRules = validation.Rules{
	"event_id": {"required", "integer", "exists:events,id"},
	"notes":    {"nullable", "string"},
}

var registrationUpdateRules = validation.Rules{
	"notes": {"sometimes", "nullable", "string"},
}

// insertOpenRegistration adds a row only while the event is still taking registrations.
// The deadline check and the insert are one statement.
const insertOpenRegistration = `INSERT INTO event_registrations (event_id, user_id, notes, registered_at, created_at, updated_at)
SELECT ?, ?, ?, ?, ?, ?
WHERE EXISTS (
	SELECT 1 FROM events
	WHERE id = ? AND (registration_deadline IS NULL OR registration_deadline >= ?)
)`

// registerForEvent inserts a registration unless the event's deadline has passed at now
func registerForEvent(tx *gorm.DB, eventID, userID uint, notes *string, now time.Time) (*model.EventRegistration, error) {
	var registration model.EventRegistration

	err := tx.Transaction(func(tx *gorm.DB) error {
		result := tx.Exec(insertOpenRegistration, eventID, userID, notes, now, now, now, eventID, now)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&model.Event{}).Where("id = ?", eventID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return gorm.ErrRecordNotFound
			}
			return ErrDeadlinePassed
		}

		return tx.Where("event_id = ? AND user_id = ?", eventID, userID).
			Order("id DESC").
			First(&registration).Error
	})
	if err != nil {
		return nil, err
	}

	return &registration, nil
}

func findRegistration(tx *gorm.DB, id uint, preloads ...string) (*model.EventRegistration, error) {
	var registration model.EventRegistration
	for _, p := range preloads {
		tx = tx.Preload(p)
	}
	if err := tx.First(&registration, id).Error; err != nil {
		return nil, err
	}
	return &registration, nil
}

// ListEventRegistrations lists registrations with their event and user
func ListEventRegistrations(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackDBOperation("list_registrations")(time.Now())
	page, err := query.Paginate[model.EventRegistration](db(c), registrationQuery, c.QueryParams(), listURL(c), "Event", "User")
	if err != nil {
		return failure(c, err, "Registration", "Failed to list registrations")
	}

	log.Info("Registrations listed", zap.Int64("total", page.Total))
	prometheus.RecordResourceOperation("registration", "list")
	return response.OK(c, "Registrations retrieved successfully", page)
}

// CreateEventRegistration registers the caller for an event
func CreateEventRegistration(c echo.Context) error {
	log := logger.FromContext(c)

	data, err := validateRequest(c, registrationRules)
	if err != nil {
		prometheus.RecordRegistration("invalid")
		return err
	}

	actor, _ := policy.FromContext(c)
	eventID := *data.UintPtr("event_id")

	defer prometheus.TrackDBOperation("create_registration")(time.Now())
	registration, err := registerForEvent(db(c), eventID, actor.UserID, data.StringPtr("notes"), time.Now().UTC())
	if errors.Is(err, ErrDeadlinePassed) {
		log.Warn("Registration after deadline", zap.Uint("event_id", eventID))
		prometheus.RecordRegistration("deadline_passed")
		return apperror.BusinessRule("Registration deadline has passed")
	}
	if err != nil {
		prometheus.RecordRegistration("failed")
		return failure(c, err, "Event", "Failed to create registration")
	}

	created, err := findRegistration(db(c), registration.ID, "Event", "User")
	if err != nil {
		return failure(c, err, "Registration", "Failed to load created registration")
	}

	log.Info("Registration created",
		zap.Uint("registration_id", created.ID),
		zap.Uint("event_id", eventID))
	prometheus.RecordRegistration("created")
	prometheus.RecordResourceOperation("registration", "create")
	return response.Created(c, "Registration created successfully", created)
}

// GetEventRegistration returns one registration
func GetEventRegistration(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c, "Registration")
	if err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("get_registration")(time.Now())
	registration, err := findRegistration(db(c), id, "Event", "User")
	if err != nil {
		return failure(c, err, "Registration", "Failed to get registration")
	}

	log.Info("Registration retrieved", zap.Uint("registration_id", id))
	prometheus.RecordResourceOperation("registration", "get")
	return response.OK(c, "Registration retrieved successfully", registration)
}

// UpdateEventRegistration changes the notes of a registration
func UpdateEventRegistration(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c, "Registration")
	if err != nil {
		return err
	}

	registration, err := findRegistration(db(c), id)
	if err != nil {
		return failure(c, err, "Registration", "Failed to get registration")
	}

	data, err := validateRequest(c, registrationUpdateRules)
	if err != nil {
		return err
	}

	if data.Has("notes") {
		registration.Notes = data.StringPtr("notes")
	}

	defer prometheus.TrackDBOperation("update_registration")(time.Now())
	if err := db(c).Save(registration).Error; err != nil {
		return failure(c, err, "Registration", "Failed to update registration")
	}

	updated, err := findRegistration(db(c), id, "Event", "User")
	if err != nil {
		return failure(c, err, "Registration", "Failed to load updated registration")
	}

	log.Info("Registration updated", zap.Uint("registration_id", id))
	prometheus.RecordResourceOperation("registration", "update")
	return response.OK(c, "Registration updated successfully", updated)
}

// DeleteEventRegistration removes a registration
func DeleteEventRegistration(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c, "Registration")
	if err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("delete_registration")(time.Now())
	registration, err := findRegistration(db(c), id)
	if err != nil {
		return failure(c, err, "Registration", "Failed to get registration")
	}

	if err := db(c).Delete(registration).Error; err != nil {
		return failure(c, err, "Registration", "Failed to delete registration")
	}

	log.Info("Registration deleted", zap.Uint("registration_id", id))
	prometheus.RecordResourceOperation("registration", "delete")
	return response.OK(c, "Registration deleted successfully", nil)
}
