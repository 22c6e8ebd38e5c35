package handler

import (
	"fmt"
	"time"

	"github.com/albretostimbung/naraicoderbe/internal/model"
	"github.com/albretostimbung/naraicoderbe/internal/query"
	"github.com/albretostimbung/naraicoderbe/internal/response"
	"github.com/albretostimbung/naraicoderbe/internal/validation"
	"github.com/albretostimbung/naraicoderbe/pkg/logger"
	"github.com/albretostimbung/naraicoderbe/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var userQuery = query.Options{
	SearchColumns: []string{"name", "email", "phone", "job_title", "company", "location"},
	SortColumns:   []string{"created_at", "updated_at", "name", "email"},
}

// profile_photo is a stored path or URL; uploads are handled elsewhere
func userRules(ignoreID uint) validation.Rules {
	unique := "unique:users,email"
	if ignoreID != 0 {
		unique = fmt.Sprintf("unique:users,email,%d", ignoreID)
	}
	return validation.Rules{
		"name":                  {"required", "string", "max:255"},
		"email":                 {"required", "email", unique},
		"password":              {"required", "string", "min:8", "confirmed"},
		"password_confirmation": {"required_with:password", "same:password"},
		"phone":                 {"nullable", "string", "max:15"},
		"profile_photo":         {"nullable", "string", "max:2048"},
		"bio":                   {"nullable", "string", "max:500"},
		"skills":                {"nullable", "array"},
		"job_title":             {"nullable", "string", "max:100"},
		"company":               {"nullable", "string", "max:100"},
		"linkedin":              {"nullable", "url", "max:255"},
		"github":                {"nullable", "url", "max:255"},
		"portfolio_url":         {"nullable", "url", "max:255"},
		"location":              {"nullable", "string", "max:100"},
	}
}

// applyUser copies validated profile fields and hashes a new password
func applyUser(u *model.User, data validation.Data) error {
	if data.Has("name") {
		u.Name = data.String("name")
	}
	if data.Has("email") {
		u.Email = data.String("email")
	}
	if data.Has("password") {
		if err := u.SetPassword(data.String("password")); err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
	}
	if data.Has("phone") {
		u.Phone = data.StringPtr("phone")
	}
	if data.Has("profile_photo") {
		u.ProfilePhoto = data.StringPtr("profile_photo")
	}
	if data.Has("bio") {
		u.Bio = data.StringPtr("bio")
	}
	if data.Has("skills") {
		u.Skills = datatypes.JSONSlice[string](data.Strings("skills"))
	}
	if data.Has("job_title") {
		u.JobTitle = data.StringPtr("job_title")
	}
	if data.Has("company") {
		u.Company = data.StringPtr("company")
	}
	if data.Has("linkedin") {
		u.Linkedin = data.StringPtr("linkedin")
	}
	if data.Has("github") {
		u.Github = data.StringPtr("github")
	}
	if data.Has("portfolio_url") {
		u.PortfolioURL = data.StringPtr("portfolio_url")
	}
	if data.Has("location") {
		u.Location = data.StringPtr("location")
	}
	return nil
}

// newMember builds an active member account from validated sign-up data
func newMember(data validation.Data) (*model.User, error) {
	user := &model.User{IsActive: true, Role: model.RoleMember}
	if err := applyUser(user, data); err != nil {
		return nil, err
	}
	return user, nil
}

func findUser(tx *gorm.DB, id uint, preloads ...string) (*model.User, error) {
	var user model.User
	for _, p := range preloads {
		tx = tx.Preload(p)
	}
	if err := tx.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers lists users with their registrations and testimonials
func ListUsers(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackDBOperation("list_users")(time.Now())
	page, err := query.Paginate[model.User](db(c), userQuery, c.QueryParams(), listURL(c), "EventRegistrations", "Testimonials")
	if err != nil {
		return failure(c, err, "User", "Failed to list users")
	}

	log.Info("Users listed", zap.Int64("total", page.Total))
	prometheus.RecordResourceOperation("user", "list")
	return response.OK(c, "Users retrieved successfully", page)
}

// CreateUser creates an active member account
func CreateUser(c echo.Context) error {
	log := logger.FromContext(c)

	data, err := validateRequest(c, userRules(0))
	if err != nil {
		return err
	}

	user, err := newMember(data)
	if err != nil {
		return failure(c, err, "User", "Failed to prepare user")
	}

	defer prometheus.TrackDBOperation("create_user")(time.Now())
	if err := db(c).Create(user).Error; err != nil {
		return failure(c, err, "User", "Failed to create user")
	}

	created, err := findUser(db(c), user.ID, "EventRegistrations", "Testimonials")
	if err != nil {
		return failure(c, err, "User", "Failed to load created user")
	}

	log.Info("User created", zap.Uint("created_user_id", created.ID))
	prometheus.RecordResourceOperation("user", "create")
	return response.Created(c, "User created successfully", created)
}

// GetUser returns one user with registrations and testimonials
func GetUser(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c, "User")
	if err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("get_user")(time.Now())
	user, err := findUser(db(c), id, "EventRegistrations", "Testimonials")
	if err != nil {
		return failure(c, err, "User", "Failed to get user")
	}

	log.Info("User retrieved", zap.Uint("target_user_id", id))
	prometheus.RecordResourceOperation("user", "get")
	return response.OK(c, "User retrieved successfully", user)
}

// UpdateUser applies a partial profile update
func UpdateUser(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c, "User")
	if err != nil {
		return err
	}

	user, err := findUser(db(c), id)
	if err != nil {
		return failure(c, err, "User", "Failed to get user")
	}

	data, err := validateRequest(c, withSometimes(userRules(id)))
	if err != nil {
		return err
	}

	if err := applyUser(user, data); err != nil {
		return failure(c, err, "User", "Failed to prepare user")
	}

	defer prometheus.TrackDBOperation("update_user")(time.Now())
	if err := db(c).Save(user).Error; err != nil {
		return failure(c, err, "User", "Failed to update user")
	}

	updated, err := findUser(db(c), id, "EventRegistrations", "Testimonials")
	if err != nil {
		return failure(c, err, "User", "Failed to load updated user")
	}

	log.Info("User updated", zap.Uint("target_user_id", id))
	prometheus.RecordResourceOperation("user", "update")
	return response.OK(c, "User updated successfully", updated)
}

// DeleteUser removes a user with, by cascade, their registrations, testimonials and tokens
func DeleteUser(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c, "User")
	if err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("delete_user")(time.Now())
	user, err := findUser(db(c), id)
	if err != nil {
		return failure(c, err, "User", "Failed to get user")
	}

	if err := db(c).Delete(user).Error; err != nil {
		return failure(c, err, "User", "Failed to delete user")
	}

	log.Info("User deleted", zap.Uint("target_user_id", id))
	prometheus.RecordResourceOperation("user", "delete")
	return response.OK(c, "User deleted successfully", nil)
}

// ListUserRegistrations lists one user's registrations with their events
func ListUserRegistrations(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c, "User")
	if err != nil {
		return err
	}

	defer prometheus.TrackDBOperation("list_user_registrations")(time.Now())
	if _, err := findUser(db(c), id); err != nil {
		return failure(c, err, "User", "Failed to get user")
	}

	page, err := query.Paginate[model.EventRegistration](
		db(c).Where("user_id = ?", id), nestedRegistrationQuery, c.QueryParams(), listURL(c), "Event")
	if err != nil {
		return failure(c, err, "Registration", "Failed to list user registrations")
	}

	log.Info("User registrations listed", zap.Uint("target_user_id", id), zap.Int64("total", page.Total))
	prometheus.RecordResourceOperation("user", "list_registrations")
	return response.OK(c, "User registrations retrieved successfully", page)
}
