package errors

import "fmt"

// Category represents the type of error.
type Category string

const (
	CategoryRouting  Category = "routing"
	CategoryProtocol Category = "protocol"
	CategoryConfig   Category = "config"
	CategoryCLI      Category = "cli"
)

// VersoError is a structured error with a code, suggestion, and wrapped cause.
type VersoError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type (routing, protocol, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *VersoError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *VersoError) Unwrap() error {
	return e.Wrapped
}

// WithDetail adds a detailed explanation to the error.
func (e *VersoError) WithDetail(format string, args ...any) *VersoError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *VersoError) WithSuggestion(s string) *VersoError {
	e.Suggestion = s
	return e
}

// Wrap wraps another error.
func (e *VersoError) Wrap(err error) *VersoError {
	e.Wrapped = err
	return e
}

// New creates a VersoError from a registered error code.
func New(code string) *VersoError {
	template, ok := registry[code]
	if !ok {
		return &VersoError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &VersoError{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Detail:     template.Detail,
		Suggestion: template.Suggestion,
	}
}

// Newf creates a new VersoError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *VersoError {
	return &VersoError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a VersoError.
func FromError(err error, code string) *VersoError {
	if err == nil {
		return nil
	}
	if ve, ok := err.(*VersoError); ok {
		return ve
	}
	return New(code).Wrap(err)
}
