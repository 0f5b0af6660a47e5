package client

import (
	"errors"
	"net/http"

	"sprintboard/internal/validation"
)

// NetworkErrorMessage is reported when the API could not be reached at all.
const NetworkErrorMessage = "Network error. Please check your connection."

var (
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("forbidden")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrSessionExpired = errors.New("session expired, please log in again")
)

// APIError is a failed call. Errors is non-nil only for field failures; a nil
// Errors is a general failure whose Message is shown once.
type APIError struct {
	Status  int               `json:"-"`
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  validation.Errors `json:"errors"`

	// Err is the transport error behind a network failure.
	Err error `json:"-"`
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return e.Message + " (" + e.Errors.Error() + ")"
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Is matches the status sentinels so callers can write errors.Is(err, client.ErrNotFound).
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	}
	return false
}

func (e *APIError) IsFieldError() bool {
	return e.Errors != nil
}

func (e *APIError) IsNetworkError() bool {
	return e.Status == 0
}

// FieldErrors returns the per-field messages, nil for a general failure.
func (e *APIError) FieldErrors() validation.Errors {
	return e.Errors
}

func networkError(err error) *APIError {
	return &APIError{Message: NetworkErrorMessage, Err: err}
}

// AsAPIError unwraps err into an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
