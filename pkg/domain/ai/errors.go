package ai

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies a failure at the AI boundary. Network and service
// failures are distinguished from each other by retryability; validation
// failures are never retryable as-is (the caller must re-prompt).
type ErrorCode string

const (
	CodeAPIError            ErrorCode = "API_ERROR"
	CodeTimeout             ErrorCode = "TIMEOUT"
	CodeRateLimited         ErrorCode = "RATE_LIMITED"
	CodeInvalidResponse     ErrorCode = "INVALID_RESPONSE"
	CodeValidationFailed    ErrorCode = "VALIDATION_FAILED"
	CodeConstraintViolation ErrorCode = "CONSTRAINT_VIOLATION"
)

// Error is the tagged failure crossing the gateway and validator boundary.
// It carries everything a caller needs to decide between retrying, re-prompting
// and surfacing a generic failure message; raw codes and details are not meant
// for end users.
type Error struct {
	Code      ErrorCode
	Message   string
	Retryable bool
	Details   []string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, strings.Join(e.Details, "; "))
}

// NewError builds a typed error with the retryability implied by its code.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:      code,
		Message:   message,
		Retryable: code == CodeTimeout || code == CodeRateLimited,
	}
}

// WithDetails attaches the violated fields or constraints and returns the
// same error for chaining.
func (e *Error) WithDetails(details ...string) *Error {
	e.Details = append(e.Details, details...)
	return e
}

// WithRetryable overrides the default retryability (5xx API errors are
// retryable, other 4xx are not).
func (e *Error) WithRetryable(retryable bool) *Error {
	e.Retryable = retryable
	return e
}

// AsError unwraps a typed Error from any error chain.
func AsError(err error) (*Error, bool) {
	var typed *Error
	if errors.As(err, &typed) {
		return typed, true
	}
	return nil, false
}

// IsRetryable reports whether the failure is worth re-invoking with the same
// input. Untyped errors are conservatively non-retryable.
func IsRetryable(err error) bool {
	if typed, ok := AsError(err); ok {
		return typed.Retryable
	}
	return false
}

// CodeOf returns the code of a typed error, or CodeAPIError for anything
// untyped that escaped the boundary.
func CodeOf(err error) ErrorCode {
	if typed, ok := AsError(err); ok {
		return typed.Code
	}
	return CodeAPIError
}
