package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("incorrect username or password")
	// ErrUsernameTaken is returned when registering a username that already exists.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicatePass is returned when the student already holds a pending or approved pass for the slot.
	ErrDuplicatePass = errors.New("a pass request already exists for this date and time slot")
	// ErrPassNotFound is returned when a pass is not found.
	ErrPassNotFound = errors.New("pass not found")
	// ErrPassNotPending is returned when reviewing a pass that is not in pending state.
	ErrPassNotPending = errors.New("pass is not in pending state")
	// ErrNotificationNotFound is returned when a notification is not found.
	ErrNotificationNotFound = errors.New("notification not found")
	// ErrInvalidPhoto is returned when an uploaded photo fails size or type checks.
	ErrInvalidPhoto = errors.New("invalid profile photo")
)

// RoleMismatchError is returned when credentials are valid but the account
// does not hold the role the login asked for. The message names that role.
type RoleMismatchError struct {
	Role string
}

func (e *RoleMismatchError) Error() string {
	return "Not authorized as a " + e.Role
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var roleErr *RoleMismatchError
	if errors.As(err, &roleErr) {
		return NewHTTPError(http.StatusForbidden, roleErr.Error(), "ROLE_MISMATCH")
	}

	switch err {
	case ErrInvalidCredentials:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case ErrUsernameTaken:
		return NewHTTPError(http.StatusConflict, err.Error(), "USERNAME_TAKEN")
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrDuplicatePass:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "DUPLICATE_PASS")
	case ErrPassNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "PASS_NOT_FOUND")
	case ErrPassNotPending:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PASS_NOT_PENDING")
	case ErrNotificationNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOTIFICATION_NOT_FOUND")
	case ErrInvalidPhoto:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_PHOTO")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
