package domain

import (
	"errors"
	"fmt"
	"time"
)

// AppError represents a standardized error response
type AppError struct {
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error codes for different failure scenarios
const (
	ErrInvalidInput       = "INVALID_INPUT"
	ErrValidation         = "VALIDATION_ERROR"
	ErrGenerationFailed   = "GENERATION_FAILED"
	ErrBackendUnavailable = "BACKEND_UNAVAILABLE"
	ErrNotFoundCode       = "NOT_FOUND"
	ErrStorage            = "STORAGE_ERROR"
	ErrInternalServer     = "INTERNAL_SERVER_ERROR"
)

// ErrNotFound is returned by stores when a record does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError represents input validation errors
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// NewAppError creates a new AppError with timestamp
func NewAppError(code, message, details, requestID string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
		RequestID: requestID,
	}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}

// GenerationError is a failed generation call. Message is safe to show to
// users as is.
type GenerationError struct {
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *GenerationError) Error() string {
	return e.Message
}

// Unwrap returns the underlying transport or decoding error
func (e *GenerationError) Unwrap() error {
	return e.Err
}

// UserMessage extracts the text a user should see for err.
func UserMessage(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	var gerr *GenerationError
	if errors.As(err, &gerr) && gerr.Message != "" {
		return gerr.Message
	}
	var aerr *AppError
	if errors.As(err, &aerr) {
		return aerr.Message
	}
	return "Failed to generate content. Please try again."
}
