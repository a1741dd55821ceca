// Package errors provides standardized error handling for the API and the
// extraction pipeline.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrCodeAuthRequired       ErrorCode = "AUTH_REQUIRED"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeUsernameTaken      ErrorCode = "USERNAME_TAKEN"

	ErrCodeSearchNotFound   ErrorCode = "SEARCH_NOT_FOUND"
	ErrCodeUserNotFound     ErrorCode = "USER_NOT_FOUND"
	ErrCodeSettingsNotFound ErrorCode = "SETTINGS_NOT_FOUND"

	ErrCodeExtractionFailed ErrorCode = "EXTRACTION_FAILED"

	ErrCodeDatabaseFailed ErrorCode = "DATABASE_FAILED"
	ErrCodeInternal       ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationError creates a non-retryable request validation error.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAuthRequiredError creates a non-retryable missing-session error.
func NewAuthRequiredError() *StandardError {
	return &StandardError{
		Code:      ErrCodeAuthRequired,
		Message:   "Not authenticated",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidCredentialsError creates a non-retryable credential error.
func NewInvalidCredentialsError() *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidCredentials,
		Message:   "Invalid credentials",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUsernameTakenError creates a non-retryable registration conflict error.
func NewUsernameTakenError(username string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUsernameTaken,
		Message:   "Username already taken",
		Details:   fmt.Sprintf("username: %s", username),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchNotFoundError creates a non-retryable missing-search error.
func NewSearchNotFoundError(searchID int) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchNotFound,
		Message:   "Search not found",
		Details:   fmt.Sprintf("searchId: %d", searchID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUserNotFoundError creates a non-retryable missing-user error.
func NewUserNotFoundError(userID int) *StandardError {
	return &StandardError{
		Code:      ErrCodeUserNotFound,
		Message:   "User not found",
		Details:   fmt.Sprintf("userId: %d", userID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSettingsNotFoundError creates a non-retryable missing-settings error.
func NewSettingsNotFoundError(userID int) *StandardError {
	return &StandardError{
		Code:      ErrCodeSettingsNotFound,
		Message:   "Settings not found",
		Details:   fmt.Sprintf("userId: %d", userID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewExtractionError wraps a per-node scraping failure. These are logged and
// the record skipped; they never abort an extraction pass.
func NewExtractionError(source string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeExtractionFailed,
		Message:   "Record extraction failed",
		Details:   fmt.Sprintf("source: %s, error: %s", source, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseError creates a retryable storage error.
func NewDatabaseError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseFailed,
		Message:   "Database operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected error.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. HTTP Mapping
// ==========================

// HTTPStatus maps an error code to its HTTP response status.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeValidationFailed:
		return http.StatusBadRequest
	case ErrCodeAuthRequired, ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	case ErrCodeSearchNotFound, ErrCodeUserNotFound, ErrCodeSettingsNotFound:
		return http.StatusNotFound
	case ErrCodeUsernameTaken:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Normalize ensures any error is a StandardError.
func Normalize(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// IsCode reports whether err is a StandardError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code == code
	}
	return false
}
