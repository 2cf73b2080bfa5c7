package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrDuplicateIdentity is returned when a username or email is already taken.
	ErrDuplicateIdentity = errors.New("user with this email or username already exists")
	// ErrUserNotFound is returned at login when no account matches the email.
	ErrUserNotFound = errors.New("user not found")
	// ErrWrongPassword is returned at login when the password does not match.
	ErrWrongPassword = errors.New("wrong password")
	// ErrUnauthenticated is returned for any failed bearer-token authentication.
	ErrUnauthenticated = errors.New("not authorized")
	// ErrEntryNotFound is returned when an entry does not exist or belongs
	// to a different owner. The two cases are deliberately indistinguishable.
	ErrEntryNotFound = errors.New("entry not found")
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ValidationError reports a rejected request field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors
// collapse to a generic 500 so internal detail never reaches clients.
func MapErrorToHTTP(err error) *HTTPError {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return NewHTTPError(http.StatusBadRequest, validationErr.Message)
	}

	switch {
	case errors.Is(err, ErrDuplicateIdentity):
		return NewHTTPError(http.StatusBadRequest, "User with this email or username already exists")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusBadRequest, "User not found")
	case errors.Is(err, ErrWrongPassword):
		return NewHTTPError(http.StatusBadRequest, "Wrong password")
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, "Not authorized")
	case errors.Is(err, ErrEntryNotFound):
		return NewHTTPError(http.StatusNotFound, "Entry not found")
	default:
		return NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}
