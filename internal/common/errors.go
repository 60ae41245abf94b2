package common

import (
	"errors"
	"net/http"
)

var (
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotFound           = errors.New("requested resource not found")
)

// ValidationError reports the first field of a request body that failed to
// parse or check. Field is empty when the body as a whole is malformed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// DuplicateError reports a unique constraint violation, either caught by a
// pre-check or raised by the store.
type DuplicateError struct {
	Field   string
	Message string
}

func (e *DuplicateError) Error() string {
	return e.Message
}

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest
	}
	var dErr *DuplicateError
	if errors.As(err, &dErr) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrUnauthenticated) || errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrUserNotFound) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// BodyFromError builds the client-facing error payload. Internal errors are
// never echoed back.
func BodyFromError(err error) ErrorBody {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return ErrorBody{Message: vErr.Message, Field: vErr.Field}
	}
	var dErr *DuplicateError
	if errors.As(err, &dErr) {
		return ErrorBody{Message: dErr.Message, Field: dErr.Field}
	}
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return ErrorBody{Message: "Invalid credentials"}
	case errors.Is(err, ErrUserNotFound):
		return ErrorBody{Message: "User not found"}
	case errors.Is(err, ErrUnauthenticated):
		return ErrorBody{Message: "Not authenticated"}
	case errors.Is(err, ErrNotFound):
		return ErrorBody{Message: "Not Found"}
	}
	return ErrorBody{Message: "Internal server error"}
}
