package handler

import (
	"strconv"
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

const defaultFeaturedLimit = 6

var testimonialQuery = query.Options{
	Filters: []query.Filter{
		{Param: "is_featured", Column: "is_featured", Kind: query.Bool},
		{Param: "is_published", Column: "is_published", Kind: query.Bool},
		{Param: "rating", Column: "rating", Kind: query.Int},
	},
	SearchColumns: []string{"content"},
	SortColumns:   []string{"created_at", "updated_at", "rating"},
}

// program_id has no backing table, so it is only type-checked
var testimonialRules = validation.Rules{
	"content":      {"required", "string"},
	"rating":       {"required", "integer", "min:1", "max:5"},
	"is_featured":  {"boolean"},
	"is_published": {"boolean"},
	"program_id":   {"nullable", "integer", "min:1"},
	"event_id":     {"nullable", "integer", "min:1", "exists:events,id"},
}

var testimonialUpdateRules = withSometimes(testimonialRules)

func applyTestimonial(t *model.Testimonial, data validation.Data) {
	if data.Has("content") {
		t.Content = data.String("content")
	}
	if data.Has("rating") {
		t.Rating = data.Int("rating")
	}
	if data.Has("is_featured") {
		t.IsFeatured = data.Bool("is_featured")
	}
	if data.Has("is_published") {
		t.IsPublished = data.Bool("is_published")
	}
	if data.Has("program_id") {
		t.ProgramID = data.UintPtr("program_id")
	}
	if data.Has("event_id") {
		t.EventID = data.UintPtr("event_id")
	}
}

func findTestimonial(tx *gorm.DB, id uint, preloads ...string) (*model.Testimonial, error) {
	var testimonial model.Testimonial
	for _, p := range preloads {
		tx = tx.Preload(p)
	}
	if err := tx.First(&testimonial, id).Error; err != nil {
		return nil, err
	}
	return &testimonial, nil
}

// authorizeTestimonial rejects callers that are neither the author nor an admin
func authorizeTestimonial(c echo.Context, t *model.Testimonial) error {
	actor, _ := policy.FromContext(c)
	if policy.CanModifyTestimonial(actor, t) {
		return nil
	}

	logger.FromContext(c).Warn("Testimonial change refused",
		zap.Uint("testimonial_id", t.ID),
		zap.Uint("owner_id", t.UserID))
	prometheus.RecordAuthError("testimonial_forbidden")
	return apperror.Forbidden("Unauthorized")
}

// ListTestimonials lists testimonials with their authors
func ListTestimonials(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackDBOperation("list_testimonials")(time.Now())
	page, err := query.Paginate[model.Testimonial](db(c), testimonialQuery, c.QueryParams(), listURL(c), "User")
	if err != nil {
		return failure(c, err, "Testimonial", "Failed to list testimonials")
	}

	log.Info("Testimonials listed", zap.Int64("total", page.Total))
	prometheus.RecordResourceOperation("testimonial", "list")
	return response.OK(c, "Testimonials retrieved successfully", page)
}

// FeaturedTestimonials is public: newest featured and published testimonials
func FeaturedTestimonials(c echo.Context) error {
	log := logger.FromContext(c)

	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit < 1 {
		limit = defaultFeaturedLimit
	}
	if limit > query.MaxPerPage {
		limit = query.MaxPerPage
	}

	defer prometheus.TrackDBOperation("featured_testimonials")(time.Now())
	testimonials := []model.Testimonial{}
	err = db(c).Preload("User").
		Where("is_featured = ? AND is_published = ?", true, true).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&testimonials).Error
	if err != nil {
		return failure(c, err, "Testimonial", "Failed to list featured testimonials")
	}

	log.Info("Featured testimonials listed", zap.Int("count", len(testimonials)), zap.Int("limit", limit))
	prometheus.RecordResourceOperation("testimonial", "featured")
	return response.OK(c, "Featured testimonials retrieved successfully", testimonials)
}

// CreateTestimonial stores a testimonial authored by the caller
func CreateTestimonial(c echo.Context) error {
	log := logger.FromContext(c)

	data, err := validateRequest(c, testimonialRules)
	if err != nil {
		return err
	}

	actor, _ := policy.FromContext(c)
	testimonial := model.Testimonial{UserID: actor.UserID, Rating: 5}
	applyTestimonial(&testimonial, data)

	defer prometheus.TrackDBOperation("create_testimonial")(time.Now())
	if err := db(c).Create(&testimonial).Error; err != nil {
		return failure(c, err, "Testimonial", "Failed to create testimonial")
	}

	created, err := findTestimonial(db(c), testimonial.ID, "User")
	if err != nil {
		return failure(c, err, "Testimonial", "Failed to load created testimonial")
	}

	log.Info("Testimonial created", zap.Uint("testimonial_id", created.ID))
	prometheus.RecordResourceOperation("testimonial", "create")
	return response.Created(c, "Testimonial created successfully", created)
}

// GetTestimonial returns one testimonial
func GetTestimonial(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c, "Testimonial")
	if err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("get_testimonial")(time.Now())
	testimonial, err := findTestimonial(db(c), id, "User")
	if err != nil {
		return failure(c, err, "Testimonial", "Failed to get testimonial")
	}

	log.Info("Testimonial retrieved", zap.Uint("testimonial_id", id))
	prometheus.RecordResourceOperation("testimonial", "get")
	return response.OK(c, "Testimonial retrieved successfully", testimonial)
}

// UpdateTestimonial lets the author or an admin change a testimonial
func UpdateTestimonial(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c, "Testimonial")
	if err != nil {
		return err
	}

	testimonial, err := findTestimonial(db(c), id)
	if err != nil {
		return failure(c, err, "Testimonial", "Failed to get testimonial")
	}

	if err := authorizeTestimonial(c, testimonial); err != nil {
		return err
	}

	data, err := validateRequest(c, testimonialUpdateRules)
	if err != nil {
		return err
	}
	applyTestimonial(testimonial, data)

	defer prometheus.TrackDBOperation("update_testimonial")(time.Now())
	if err := db(c).Save(testimonial).Error; err != nil {
		return failure(c, err, "Testimonial", "Failed to update testimonial")
	}

	updated, err := findTestimonial(db(c), id, "User")
	if err != nil {
		return failure(c, err, "Testimonial", "Failed to load updated testimonial")
	}

	log.Info("Testimonial updated", zap.Uint("testimonial_id", id))
	prometheus.RecordResourceOperation("testimonial", "update")
	return response.OK(c, "Testimonial updated successfully", updated)
}

// DeleteTestimonial lets the author or an admin remove a testimonial
func DeleteTestimonial(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c, "Testimonial")
	if err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("delete_testimonial")(time.Now())
	testimonial, err := findTestimonial(db(c), id)
	if err != nil {
		return failure(c, err, "Testimonial", "Failed to get testimonial")
	}

	if err := authorizeTestimonial(c, testimonial); err != nil {
		return err
	}

	if err := db(c).Delete(testimonial).Error; err != nil {
		return failure(c, err, "Testimonial", "Failed to delete testimonial")
	}

	log.Info("Testimonial deleted", zap.Uint("testimonial_id", id))
	prometheus.RecordResourceOperation("testimonial", "delete")
	return response.OK(c, "Testimonial deleted successfully", nil)
}
