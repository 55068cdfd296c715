package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"

	// Validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Quiz specific errors
	CodeQuizNotFound    ErrorCode = "QUIZ_NOT_FOUND"
	CodeScrapeFailed    ErrorCode = "SCRAPE_FAILED"
	CodeLLMServiceError ErrorCode = "LLM_SERVICE_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the cause to errors.Is / errors.As
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// WithContext attaches a key/value pair that is returned to clients as error details
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewQuizNotFoundError(quizID string) *DomainError {
	return NewError(CodeQuizNotFound, fmt.Sprintf("Quiz not found with ID: %s", quizID), nil).
		WithContext("quiz_id", quizID)
}

func NewScrapeFailedError(url string, cause error) *DomainError {
	return NewError(CodeScrapeFailed, "Failed to extract Wikipedia content", cause).
		WithContext("url", url)
}

func NewLLMServiceError(cause error) *DomainError {
	return NewError(CodeLLMServiceError, "Failed to process with LLM service", cause)
}

// ValidationError describes a single invalid request field
type ValidationError struct {
	Code    ErrorCode   `json:"code"`
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is returned by handlers and rendered as a 400 by the error middleware
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	return fmt.Sprintf("%s (and %d more)", e[0].Error(), len(e)-1)
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{
		Code:    CodeMissingField,
		Field:   field,
		Message: fmt.Sprintf("%s is required", field),
	}
}

func NewInvalidFormatError(field string, value interface{}) ValidationError {
	return ValidationError{
		Code:    CodeInvalidFormat,
		Field:   field,
		Message: fmt.Sprintf("%s has an invalid format", field),
		Value:   value,
	}
}

func NewOutOfRangeError(field string, value interface{}, min, max int) ValidationError {
	return ValidationError{
		Code:    CodeOutOfRange,
		Field:   field,
		Message: fmt.Sprintf("%s must be between %d and %d", field, min, max),
		Value:   value,
	}
}
