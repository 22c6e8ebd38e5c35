// Package apperror classifies request failures into the HTTP error taxonomy.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/albretostimbung/naraicoderbe/internal/validation"
	"gorm.io/gorm"
)

// Sentinel causes, usable with errors.Is
var (
	ErrBadRequest   = errors.New("bad request")
	ErrValidation   = errors.New("validation failed")
	ErrBusinessRule = errors.New("business rule violated")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrInternal     = errors.New("internal error")
)

// AppError carries the status, the client-facing message and optional field errors
type AppError struct {
	Code    int
	Message string
	Errors  validation.Errors
	kind    error
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.Message)
}

// Is matches the sentinel kind
func (e *AppError) Is(target error) bool {
	return target == e.kind
}

// Unwrap returns the underlying cause
func (e *AppError) Unwrap() error {
	return e.Cause
}

// New builds an AppError whose kind follows code
func New(code int, msg string) *AppError {
	kind := ErrBadRequest
	switch {
	case code == http.StatusUnauthorized:
		kind = ErrUnauthorized
	case code == http.StatusForbidden:
		kind = ErrForbidden
	case code == http.StatusNotFound:
		kind = ErrNotFound
	case code == http.StatusUnprocessableEntity:
		kind = ErrBusinessRule
	case code >= http.StatusInternalServerError:
		kind = ErrInternal
	}
	return &AppError{Code: code, Message: msg, kind: kind}
}

// Validation is a 422 carrying field-level errors
func Validation(errs validation.Errors) *AppError {
	return &AppError{Code: http.StatusUnprocessableEntity, Message: "Validation failed", Errors: errs, kind: ErrValidation}
}

// FieldError is a 422 for a single field
func FieldError(field, msg string) *AppError {
	errs := validation.Errors{}
	errs.Add(field, msg)
	return Validation(errs)
}

// BusinessRule is a 422 without field detail
func BusinessRule(msg string) *AppError {
	return &AppError{Code: http.StatusUnprocessableEntity, Message: msg, kind: ErrBusinessRule}
}

// Unauthorized is a 401
func Unauthorized(msg string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, Message: msg, kind: ErrUnauthorized}
}

// Forbidden is a 403
func Forbidden(msg string) *AppError {
	return &AppError{Code: http.StatusForbidden, Message: msg, kind: ErrForbidden}
}

// NotFound is a 404 naming the missing entity
func NotFound(entity string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: entity + " not found", kind: ErrNotFound}
}

// Internal is a 500 that hides cause from the client
func Internal(msg string, cause error) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: msg, kind: ErrInternal, Cause: cause}
}

// FromDatabase maps a persistence error for entity to the taxonomy
func FromDatabase(err error, entity string) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(entity)
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicate(err) {
		e := BusinessRule(entity + " already exists")
		e.Cause = err
		return e
	}

	return Internal("Failed to process "+strings.ToLower(entity), err)
}

func isDuplicate(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}

// From converts any error into an AppError
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return Validation(verrs)
	}

	return Internal("Internal server error", err)
}
