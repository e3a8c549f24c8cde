package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrDuplicateAttempt = errors.New("test already attempted with this email")
	ErrInvalidOTP       = errors.New("invalid or expired OTP")
	ErrNotVerified      = errors.New("email not verified")
	ErrBadCredentials   = errors.New("invalid username or password")
	ErrAlreadyExists    = errors.New("record already exists")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Message)
	}
	return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return ValidationError{Field: field, Message: message}
}

type NotFoundError struct {
	Resource string
	ID       interface{}
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Resource, e.ID)
}

// StorageError wraps a failed query so callers can tell store outages from
// domain rejections.
type StorageError struct {
	Op  string
	Err error
}

func (e StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %s", e.Op, e.Err.Error())
}

func (e StorageError) Unwrap() error {
	return e.Err
}

func NewStorageError(op string, err error) error {
	return StorageError{Op: op, Err: err}
}

type NotificationError struct {
	Recipient string
	Err       error
}

func (e NotificationError) Error() string {
	return fmt.Sprintf("notification to %s failed: %s", e.Recipient, e.Err.Error())
}

func (e NotificationError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}

func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

// HTTPStatus maps the error taxonomy onto response codes.
func HTTPStatus(err error) int {
	var (
		validation ValidationError
		notFound   NotFoundError
		storage    StorageError
		notify     NotificationError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validation), errors.Is(err, ErrInvalidOTP):
		return http.StatusBadRequest
	case errors.Is(err, ErrBadCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotVerified):
		return http.StatusForbidden
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateAttempt), errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	case errors.As(err, &notify):
		return http.StatusBadGateway
	case errors.As(err, &storage):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
