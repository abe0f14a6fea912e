package errors

import (
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Error codes carried in the error_code problem extension
const (
	CodeInvalidMonthKey    = "INVALID_MONTH_KEY"
	CodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	CodeDatasetUnavailable = "DATASET_UNAVAILABLE"
)

var (
	// 429 Too Many Requests
	ErrRateLimitExceeded = New(http.StatusTooManyRequests, CodeRateLimitExceeded, "Rate limit exceeded")

	// 503 Service Unavailable; the load failure itself stays in the logs
	ErrDatasetUnavailable = New(http.StatusServiceUnavailable, CodeDatasetUnavailable, "Plant readings could not be loaded")
)

// InvalidMonthKeyError rejects a month key that is not shaped YYYY-MM
func InvalidMonthKeyError(monthKey string) *APIError {
	return NewWithDetails(http.StatusBadRequest, CodeInvalidMonthKey, "month key must be YYYY-MM",
		map[string]string{"month_key": monthKey})
}
