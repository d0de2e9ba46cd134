package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput    = errors.New("input is empty or contains only whitespace")
	ErrEmptyArray    = errors.New("JSON array is empty")
	ErrFileEmpty     = errors.New("file is empty")
	ErrNoInput       = errors.New("no input provided: please pass a file path or pipe data to stdin")
	ErrUnknownFormat = errors.New("could not determine file format from the extension")
	ErrNotTabular    = errors.New("JSON must be an object or an array of objects")
	ErrLineNotObject = errors.New("JSONL lines must be objects")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput   ErrorType = "input"
	ErrorTypeIO      ErrorType = "io"
	ErrorTypeParse   ErrorType = "parse"
	ErrorTypeEmpty   ErrorType = "empty"
	ErrorTypeShape   ErrorType = "shape"
	ErrorTypeUnknown ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	// Check if target is also an *AppError and if the types match
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewInputError creates a new error for command-line misuse
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewIOError creates a new error for file reads and writes
func NewIOError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeIO,
		Message: message,
		Err:     err,
	}
}

// NewParseError creates a new error for malformed input syntax
func NewParseError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeParse,
		Message: message,
		Err:     err,
	}
}

// NewEmptyInputError creates a new error for structurally empty sources
func NewEmptyInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeEmpty,
		Message: message,
		Err:     err,
	}
}

// NewShapeError creates a new error for input that parses but cannot
// become a table
func NewShapeError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeShape,
		Message: message,
		Err:     err,
	}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeIO:
			return fmt.Sprintf("File error: %s", appErr.Message)
		case ErrorTypeParse:
			return fmt.Sprintf("Parse error: %s", appErr.Message)
		case ErrorTypeEmpty:
			return fmt.Sprintf("Empty input: %s", appErr.Message)
		case ErrorTypeShape:
			return fmt.Sprintf("Invalid shape: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide data to convert."
	}
	if errors.Is(err, ErrEmptyArray) {
		return "Error: The JSON array is empty. There are no rows to tabulate."
	}
	if errors.Is(err, ErrFileEmpty) {
		return "Error: The specified file is empty. Please provide a file with content."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please pass a file path or pipe data to stdin."
	}
	if errors.Is(err, ErrUnknownFormat) {
		return "Error: Could not determine the file format. Please pass --from explicitly."
	}
	if errors.Is(err, ErrNotTabular) {
		return "Error: The JSON root must be an object or an array of objects."
	}
	if errors.Is(err, ErrLineNotObject) {
		return "Error: Every JSONL line must hold a single JSON object."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}
