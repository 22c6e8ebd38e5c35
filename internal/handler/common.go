package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/albretostimbung/naraicoderbe/internal/apperror"
	"github.com/albretostimbung/naraicoderbe/internal/slug"
	"github.com/albretostimbung/naraicoderbe/internal/validation"
	"github.com/albretostimbung/naraicoderbe/pkg/database"
	"github.com/albretostimbung/naraicoderbe/pkg/logger"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func db(c echo.Context) *gorm.DB {
	return database.GetDB().WithContext(c.Request().Context())
}

// bindInput decodes the request body into an untyped record
func bindInput(c echo.Context) (validation.Input, error) {
	raw := map[string]interface{}{}
	if err := (&echo.DefaultBinder{}).BindBody(c, &raw); err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) && httpErr.Code != http.StatusBadRequest {
			return nil, err
		}
		return nil, apperror.New(http.StatusBadRequest, "Invalid request body")
	}
	return validation.Input(raw), nil
}

// validateRequest binds the body and evaluates rules against it
func validateRequest(c echo.Context, rules validation.Rules) (validation.Data, error) {
	log := logger.FromContext(c)

	input, err := bindInput(c)
	if err != nil {
		log.Warn("Failed to parse request body", zap.Error(err))
		return nil, err
	}

	v := validation.New(validation.NewGormLookup(db(c)))
	data, err := v.Validate(c.Request().Context(), rules, input)
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			log.Warn("Validation failed", zap.Strings("fields", fieldNames(verrs)))
			return nil, apperror.Validation(verrs)
		}
		log.Error("Failed to evaluate validation rules", zap.Error(err))
		return nil, apperror.Internal("Internal server error", err)
	}

	return data, nil
}

func fieldNames(errs validation.Errors) []string {
	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	return names
}

// idParam parses the :id route parameter. A malformed id cannot name a row.
func idParam(c echo.Context, entity string) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.NotFound(entity)
	}
	return uint(id), nil
}

// failure logs err and converts it for the error handler
func failure(c echo.Context, err error, entity, msg string) error {
	log := logger.FromContext(c)

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		log.Warn(msg, zap.Strings("fields", fieldNames(verrs)))
		return apperror.Validation(verrs)
	}

	appErr := apperror.FromDatabase(err, entity)
	if appErr.Code >= http.StatusInternalServerError {
		log.Error(msg, zap.Error(err))
	} else {
		log.Warn(msg, zap.Error(err))
	}
	return appErr
}

// listURL is the absolute URL of the current listing without its query
func listURL(c echo.Context) string {
	return c.Scheme() + "://" + c.Request().Host + c.Request().URL.Path
}

// checkSlug rejects a source value whose slug is empty or used by another row of model
func checkSlug(tx *gorm.DB, model interface{}, field, source string, id uint) error {
	s := slug.Make(source)
	if s == "" {
		return apperror.FieldError(field, "The "+validation.Attribute(field)+" must contain at least one letter or number.")
	}

	taken, err := slugTaken(tx, model, s, id)
	if err != nil {
		return err
	}
	if taken {
		return apperror.FieldError(field, "The "+validation.Attribute(field)+" has already been taken.")
	}
	return nil
}

// slugTaken reports whether another row of model already uses slug
func slugTaken(tx *gorm.DB, model interface{}, slug string, id uint) (bool, error) {
	query := tx.Model(model).Where(clause.Eq{Column: clause.Column{Name: "slug"}, Value: slug})
	if id != 0 {
		query = query.Where(clause.Neq{Column: clause.Column{Name: "id"}, Value: id})
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// withSometimes prefixes every rule list with "sometimes" for partial updates
func withSometimes(rules validation.Rules) validation.Rules {
	out := make(validation.Rules, len(rules))
	for field, directives := range rules {
		out[field] = append([]string{"sometimes"}, directives...)
	}
	return out
}
