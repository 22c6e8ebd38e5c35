package middleware

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/albretostimbung/naraicoderbe/internal/apperror"
	"github.com/albretostimbung/naraicoderbe/internal/model"
	"github.com/albretostimbung/naraicoderbe/internal/policy"
	"github.com/albretostimbung/naraicoderbe/pkg/database"
	"github.com/albretostimbung/naraicoderbe/pkg/jwtutil"
	"github.com/albretostimbung/naraicoderbe/pkg/logger"
	"github.com/albretostimbung/naraicoderbe/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	userKey  = "user"
	tokenKey = "access_token"
)

var bearerPattern = regexp.MustCompile(`^Bearer\s+\S+$`)

func unauthorized() error {
	return apperror.Unauthorized("Unauthorized")
}

// AuthMiddleware accepts a request only with a signed, unexpired, unrevoked
// bearer token whose owner is still active
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		prometheus.AuthAttemptsCounter.Inc()

		header := c.Request().Header.Get("Authorization")
		if !bearerPattern.MatchString(header) {
			log.Warn("Missing or malformed authorization header")
			prometheus.RecordAuthError("missing_token")
			return unauthorized()
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))

		claims, err := jwtutil.Default().ValidateToken(tokenString)
		if err != nil {
			log.Warn("Invalid token", zap.Error(err))
			prometheus.RecordAuthError("invalid_token")
			return unauthorized()
		}

		db := database.GetDB().WithContext(c.Request().Context())

		var token model.AccessToken
		start := time.Now()
		err = db.Preload("User").Where("id = ?", claims.ID).First(&token).Error
		prometheus.TrackDBOperation("auth_token_lookup")(start)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("Unknown token", zap.String("token_id", claims.ID))
			prometheus.RecordAuthError("unknown_token")
			return unauthorized()
		}
		if err != nil {
			log.Error("Failed to look up token", zap.Error(err))
			prometheus.RecordAuthError("lookup_failed")
			return apperror.Internal("Internal server error", err)
		}

		if !token.IsValid() || token.UserID != claims.UserID {
			log.Warn("Revoked or expired token", zap.String("token_id", token.ID), zap.Bool("revoked", token.Revoked))
			prometheus.RecordAuthError("revoked_or_expired")
			return unauthorized()
		}

		user := token.User
		if user == nil || !user.IsActive {
			log.Warn("Token owner missing or inactive", zap.Uint("user_id", token.UserID))
			prometheus.RecordAuthError("inactive_user")
			return unauthorized()
		}

		if err := db.Model(&token).UpdateColumn("last_used_at", time.Now().UTC()).Error; err != nil {
			log.Warn("Failed to record token use", zap.Error(err))
		}

		prometheus.AuthSuccessCounter.Inc()

		c.Set("user_id", user.ID)
		c.Set(userKey, user)
		c.Set(tokenKey, &token)
		policy.SetActor(c, policy.ActorFor(user))

		logger.WithContext(c, log.With(
			zap.Uint("user_id", user.ID),
			zap.String("email", user.Email),
		))

		return next(c)
	}
}

// CurrentUser returns the user authenticated by AuthMiddleware
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userKey).(*model.User)
	return user
}

// CurrentToken returns the access token presented on the request
func CurrentToken(c echo.Context) *model.AccessToken {
	token, _ := c.Get(tokenKey).(*model.AccessToken)
	return token
}
