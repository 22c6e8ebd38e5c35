package handler

import (
	"errors"
	"time"

	"github.com/albretostimbung/naraicoderbe/internal/apperror"
	"github.com/albretostimbung/naraicoderbe/internal/middleware"
	"github.com/albretostimbung/naraicoderbe/internal/model"
	"github.com/albretostimbung/naraicoderbe/internal/response"
	"github.com/albretostimbung/naraicoderbe/internal/validation"
	"github.com/albretostimbung/naraicoderbe/pkg/logger"
	"github.com/albretostimbung/naraicoderbe/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const apiTokenName = "api"

var loginRules = validation.Rules{
	"email":    {"required", "email"},
	"password": {"required"},
}

// Login exchanges credentials for a bearer token
func Login(c echo.Context) error {
	log := logger.FromContext(c)

	data, err := validateRequest(c, loginRules)
	if err != nil {
		prometheus.RecordLogin("invalid_request")
		return err
	}
	email := data.String("email")

	defer prometheus.TrackDBOperation("login")(time.Now())
	var user model.User
	err = db(c).Where("email = ?", email).First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return failure(c, err, "User", "Failed to look up user")
	}

	if err != nil || !user.CheckPassword(data.String("password")) || !user.IsActive {
		log.Warn("Invalid credentials", zap.String("email", email))
		prometheus.RecordLogin("invalid_credentials")
		prometheus.RecordAuthError("invalid_credentials")
		return apperror.Unauthorized("Invalid credentials")
	}

	token, _, err := middleware.IssueToken(c.Request().Context(), db(c), &user, apiTokenName)
	if err != nil {
		log.Error("Failed to issue token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return apperror.Internal("Internal server error", err)
	}

	log.Info("User logged in", zap.Uint("user_id", user.ID), zap.String("email", user.Email))
	prometheus.RecordLogin("success")
	return response.OK(c, "Login successful", echo.Map{
		"token": token,
		"user":  user,
	})
}

// Register signs up a new active member
func Register(c echo.Context) error {
	log := logger.FromContext(c)

	data, err := validateRequest(c, userRules(0))
	if err != nil {
		return err
	}

	user, err := newMember(data)
	if err != nil {
		return failure(c, err, "User", "Failed to prepare user")
	}

	defer prometheus.TrackDBOperation("register")(time.Now())
	if err := db(c).Create(user).Error; err != nil {
		return failure(c, err, "User", "Failed to register user")
	}

	log.Info("User registered", zap.Uint("user_id", user.ID), zap.String("email", user.Email))
	prometheus.RecordResourceOperation("user", "register")
	return response.OK(c, "User registered successfully", user)
}

// CurrentUser returns the authenticated user
func CurrentUser(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return apperror.Unauthorized("Unauthorized")
	}

	logger.FromContext(c).Info("Current user retrieved")
	return response.OK(c, "User retrieved successfully", user)
}

// Logout revokes the token used for this request
func Logout(c echo.Context) error {
	log := logger.FromContext(c)

	token := middleware.CurrentToken(c)
	if token == nil {
		return apperror.Unauthorized("Unauthorized")
	}

	defer prometheus.TrackDBOperation("logout")(time.Now())
	if err := middleware.RevokeToken(c.Request().Context(), db(c), token); err != nil {
		return failure(c, err, "Token", "Failed to revoke token")
	}

	log.Info("Token revoked", zap.String("token_id", token.ID))
	prometheus.RecordResourceOperation("token", "revoke")
	return response.OK(c, "Logout successful", nil)
}
