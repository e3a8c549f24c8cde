package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "validation", err: NewValidationError("test_name", "required"), want: http.StatusBadRequest},
		{name: "wrapped validation", err: fmt.Errorf("save: %w", NewValidationError("questions", "empty")), want: http.StatusBadRequest},
		{name: "not found", err: NotFoundError{Resource: "test", ID: 7}, want: http.StatusNotFound},
		{name: "duplicate", err: ErrDuplicateAttempt, want: http.StatusConflict},
		{name: "storage", err: NewStorageError("insert result", errors.New("conn reset")), want: http.StatusInternalServerError},
		{name: "notification", err: NotificationError{Recipient: "a@x.com", Err: errors.New("bounce")}, want: http.StatusBadGateway},
		{name: "otp", err: ErrInvalidOTP, want: http.StatusBadRequest},
		{name: "credentials", err: ErrBadCredentials, want: http.StatusUnauthorized},
		{name: "unverified", err: ErrNotVerified, want: http.StatusForbidden},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := HTTPStatus(tc.err); got != tc.want {
				t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

func TestStorageErrorUnwraps(t *testing.T) {
	root := errors.New("deadlock")
	err := NewStorageError("create test", root)
	if !errors.Is(err, root) {
		t.Fatal("StorageError should unwrap to the driver error")
	}
}
