package core

import (
	"errors"
	"fmt"
)

// Error represents a structured error with category and details
type Error struct {
	Category ErrorCategory
	Code     string                 // Machine-readable code: flow_not_found, missing_api_key, etc.
	Message  string                 // Human-readable message
	Details  map[string]interface{} // Additional context
	Cause    error                  // Underlying error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same code, so wrapped copies produced by
// WithCause or WithMessage still match their predefined sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// WithCause returns a copy of the error with the given cause
func (e *Error) WithCause(cause error) *Error {
	return &Error{
		Category: e.Category,
		Code:     e.Code,
		Message:  e.Message,
		Details:  e.Details,
		Cause:    cause,
	}
}

// WithMessage returns a copy of the error with a custom message
func (e *Error) WithMessage(msg string) *Error {
	return &Error{
		Category: e.Category,
		Code:     e.Code,
		Message:  msg,
		Details:  e.Details,
		Cause:    e.Cause,
	}
}

// WithDetails returns a copy of the error with additional details
func (e *Error) WithDetails(details map[string]interface{}) *Error {
	merged := make(map[string]interface{})
	for k, v := range e.Details {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}
	return &Error{
		Category: e.Category,
		Code:     e.Code,
		Message:  e.Message,
		Details:  merged,
		Cause:    e.Cause,
	}
}

// Predefined errors
var (
	// Input errors
	ErrFlowNotFound = &Error{
		Category: ErrCategoryInput,
		Code:     "flow_not_found",
		Message:  "flow file not found",
	}
	ErrFlowParse = &Error{
		Category: ErrCategoryInput,
		Code:     "flow_parse",
		Message:  "flow file is not valid JSON",
	}

	// Config errors
	ErrMissingAPIKey = &Error{
		Category: ErrCategoryConfig,
		Code:     "missing_api_key",
		Message:  "OPENAI_API_KEY is not set",
	}
	ErrInvalidConfig = &Error{
		Category: ErrCategoryConfig,
		Code:     "invalid_config",
		Message:  "invalid configuration",
	}

	// Collaborator errors
	ErrCompletionFailed = &Error{
		Category: ErrCategoryCollaborator,
		Code:     "completion_failed",
		Message:  "text completion request failed",
	}
	ErrEmptyCompletion = &Error{
		Category: ErrCategoryCollaborator,
		Code:     "empty_completion",
		Message:  "text completion returned no content",
	}
	ErrImageGeneration = &Error{
		Category: ErrCategoryCollaborator,
		Code:     "image_generation_failed",
		Message:  "image generation request failed",
	}
	ErrImageDecode = &Error{
		Category: ErrCategoryCollaborator,
		Code:     "image_decode_failed",
		Message:  "image payload could not be decoded",
	}

	// Output errors
	ErrWriteOutput = &Error{
		Category: ErrCategoryOutput,
		Code:     "write_output",
		Message:  "failed to write output",
	}
)

// CategoryOf returns the category of the first *Error in err's chain.
func CategoryOf(err error) ErrorCategory {
	var e *Error
	if errors.As(err, &e) {
		return e.Category
	}
	return ErrCategoryNone
}
