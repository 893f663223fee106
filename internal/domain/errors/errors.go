// Package errors defines the application's labeled failure modes: fatal
// pipeline-stage errors and HTTP-mapped errors for the dashboard.
package errors

import (
	"net/http"

	"retailcast/internal/errors"
)

// Labeled pipeline failures. Each aborts its stage; none may degrade into a
// silent NaN or default flowing downstream.
var (
	// ErrNoObservedAges is returned by the cleaning stage when every customer
	// age is missing, leaving the imputation median undefined.
	ErrNoObservedAges = errors.New("age imputation undefined: no observed ages in customer input")

	// ErrDegenerateSeries is returned by the trainer when the daily sales
	// series is too short or has no variation to support a seasonal fit.
	ErrDegenerateSeries = errors.New("daily sales series is degenerate: not enough distinct observations to fit")

	// ErrInvalidCounts is returned by the generator for non-positive record
	// counts or an inverted date window.
	ErrInvalidCounts = errors.New("generator counts must be positive and the date window must not be inverted")
)

// AppError defines the interface for dashboard-facing errors.
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Predefined dashboard error types
var (
	ErrForecastRange = NewBaseError(
		http.StatusBadRequest,
		"FORECAST_RANGE",
		"Forecast days outside the accepted range",
	)

	ErrBasePrice = NewBaseError(
		http.StatusBadRequest,
		"BASE_PRICE",
		"Base price must be greater than zero",
	)

	ErrUpstreamFailure = NewBaseError(
		http.StatusBadGateway,
		"UPSTREAM_FAILURE",
		"Failed to fetch results from the insight API",
	)
)
