package errors

import (
	stdErrors "errors"
	"fmt"
	"sort"
	"strings"
)

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures a single invalid field in configuration or user input.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// FieldErrors collects per-field messages for a submitted form. Forms render
// the message next to the matching input and block submission while any
// entry is present.
type FieldErrors map[string]string

// Add records a message for field, keeping the first message when the field
// already failed.
func (fe FieldErrors) Add(field, message string) {
	if _, exists := fe[field]; exists {
		return
	}
	fe[field] = message
}

// Get returns the message recorded for field.
func (fe FieldErrors) Get(field string) string {
	return fe[field]
}

// Err returns nil when no field failed, otherwise the FieldErrors itself.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for field := range fe {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, fe[field]))
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// UserError is a failure whose Message can be shown to the user inline. Err
// keeps the underlying cause for logging.
type UserError struct {
	Message string
	Err     error
}

// NewUserError constructs a UserError.
func NewUserError(message string, err error) error {
	return &UserError{Message: message, Err: err}
}

func (e *UserError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying error.
func (e *UserError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// UserMessage returns the message of the first UserError in err's chain, or
// fallback.
func UserMessage(err error, fallback string) string {
	var ue *UserError
	if stdErrors.As(err, &ue) && ue.Message != "" {
		return ue.Message
	}
	return fallback
}
