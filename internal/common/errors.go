package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Error taxonomy. ParseFailure is always recovered locally (field left
// absent) and never crosses the engine boundary; the rest can.
var (
	ErrParseFailure          = errors.New("parse failure")
	ErrModelUnavailable      = errors.New("model unavailable")
	ErrMalformedInput        = errors.New("malformed input")
	ErrInconsistentDateOrder = errors.New("inconsistent date order")
	ErrNotFound              = errors.New("resource not found")
	ErrDatabase              = errors.New("database error")
)

// Error codes carried on AppError and on the wire.
const (
	CodeParseFailure          = "PARSE_FAILURE"
	CodeModelUnavailable      = "MODEL_UNAVAILABLE"
	CodeMalformedInput        = "MALFORMED_INPUT"
	CodeInconsistentDateOrder = "INCONSISTENT_DATE_ORDER"
)

func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// MalformedInput builds the structured error surfaced when required top-level
// request fields are missing.
func MalformedInput(message string) *AppError {
	return NewAppError(CodeMalformedInput, message, ErrMalformedInput)
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
