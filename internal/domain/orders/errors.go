package orders

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard domain errors.
var (
	ErrFetchFailure       = errors.New("failed to fetch orders from upstream")
	ErrEmptyDataset       = errors.New("no valid order records in dataset")
	ErrUnauthorized       = errors.New("unauthorized against Orders API")
	ErrNotFound           = errors.New("resource not found")
	ErrRateLimited        = errors.New("Orders API rate limit exceeded")
	ErrServiceUnavailable = errors.New("Orders API temporarily unavailable")
	ErrInvalidStatus      = errors.New("invalid order status")
)

// APIError represents a structured error from the Orders API. The upstream
// reports errors as {"message": "..."} with an HTTP status code.
type APIError struct {
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Endpoint   string `json:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("orders api %s: %s (status %d)", e.Endpoint, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("orders api: %s (status %d)", e.Message, e.StatusCode)
}

// Is implements errors.Is for APIError.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrFetchFailure:
		return true
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	case ErrServiceUnavailable:
		return e.StatusCode >= 500
	default:
		return false
	}
}

// IsRetryable returns true if this error is safe to retry.
func (e *APIError) IsRetryable() bool {
	return e.StatusCode == http.StatusTooManyRequests ||
		e.StatusCode == http.StatusRequestTimeout ||
		e.StatusCode >= 500
}

// NewAPIError creates a new APIError with the given parameters.
func NewAPIError(endpoint, message string, statusCode int) *APIError {
	return &APIError{
		Message:    message,
		StatusCode: statusCode,
		Endpoint:   endpoint,
	}
}

// ErrorCategory classifies errors for logging and response mapping.
type ErrorCategory string

const (
	CategoryAuthentication ErrorCategory = "authentication"
	CategoryRateLimit      ErrorCategory = "rate_limit"
	CategoryServer         ErrorCategory = "server"
	CategoryNotFound       ErrorCategory = "not_found"
	CategoryValidation     ErrorCategory = "validation"
	CategoryUnknown        ErrorCategory = "unknown"
)

// Category returns the category of this error.
func (e *APIError) Category() ErrorCategory {
	switch {
	case e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden:
		return CategoryAuthentication
	case e.StatusCode == http.StatusTooManyRequests:
		return CategoryRateLimit
	case e.StatusCode == http.StatusNotFound:
		return CategoryNotFound
	case e.StatusCode == http.StatusBadRequest:
		return CategoryValidation
	case e.StatusCode >= 500:
		return CategoryServer
	default:
		return CategoryUnknown
	}
}
