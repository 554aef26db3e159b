package types

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrorCode represents a namespaced error code for movierag errors.
type ErrorCode string

// ErrorKind groups error codes into the categories callers act on.
type ErrorKind string

const (
	// KindConfiguration covers missing or invalid settings and credentials.
	KindConfiguration ErrorKind = "configuration"
	// KindConnection covers an unreachable or closed graph database.
	KindConnection ErrorKind = "connection"
	// KindExternalService covers embedding and generation API failures.
	KindExternalService ErrorKind = "external_service"
	// KindTimeout covers any external call that exceeded its deadline.
	KindTimeout ErrorKind = "timeout"
	// KindInvalidArgument covers bad caller input.
	KindInvalidArgument ErrorKind = "invalid_argument"
	// KindInternal is the fallback for unregistered codes.
	KindInternal ErrorKind = "internal"
)

// Configuration error codes
const (
	CONFIG_LOAD_FAILED       ErrorCode = "CONFIG_LOAD_FAILED"
	CONFIG_PARSE_FAILED      ErrorCode = "CONFIG_PARSE_FAILED"
	CONFIG_VALIDATION_FAILED ErrorCode = "CONFIG_VALIDATION_FAILED"
	CONFIG_NOT_FOUND         ErrorCode = "CONFIG_NOT_FOUND"
)

var (
	kindsMu sync.RWMutex
	kinds   = map[ErrorCode]ErrorKind{}
)

func init() {
	RegisterKind(KindConfiguration,
		CONFIG_LOAD_FAILED, CONFIG_PARSE_FAILED, CONFIG_VALIDATION_FAILED, CONFIG_NOT_FOUND)
}

// RegisterKind associates codes with a kind. Packages call it from init so
// that every error built from one of their codes reports the right kind.
func RegisterKind(kind ErrorKind, codes ...ErrorCode) {
	kindsMu.Lock()
	defer kindsMu.Unlock()
	for _, code := range codes {
		kinds[code] = kind
	}
}

// KindOf returns the kind registered for code, or KindInternal.
func KindOf(code ErrorCode) ErrorKind {
	kindsMu.RLock()
	defer kindsMu.RUnlock()
	if kind, ok := kinds[code]; ok {
		return kind
	}
	return KindInternal
}

// Error represents a structured error with error code, message, and optional cause.
// It supports error wrapping and retryability hints for error handling logic.
type Error struct {
	Code      ErrorCode
	Message   string
	Retryable bool
	Cause     error
}

// Error implements the error interface, returning a formatted error message.
// Format: "[CODE] message" or "[CODE] message: cause" if cause exists.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error for error unwrapping chains.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the target error matches this error by error code.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Code == other.Code
	}
	return false
}

// Kind returns the category registered for the error's code.
func (e *Error) Kind() ErrorKind {
	return KindOf(e.Code)
}

// NewError creates a new non-retryable Error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// NewRetryableError creates a new retryable Error with the given code and message.
// Use this for transient errors that may succeed on retry (e.g., rate limits).
func NewRetryableError(code ErrorCode, message string) *Error {
	return &Error{
		Code:      code,
		Message:   message,
		Retryable: true,
	}
}

// WrapError creates a new non-retryable Error that wraps an existing error.
func WrapError(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapRetryableError creates a retryable Error that wraps an existing error.
func WrapRetryableError(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:      code,
		Message:   message,
		Retryable: true,
		Cause:     cause,
	}
}

// KindOfError walks the chain of err and returns the kind of the first
// *Error found. A bare context deadline maps to KindTimeout.
func KindOfError(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	return KindInternal
}

// IsRetryable reports whether err carries a retryable hint.
func IsRetryable(err error) bool {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Retryable
	}
	return false
}

// CodeOf returns the code of the first *Error in the chain, or "".
func CodeOf(err error) ErrorCode {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Code
	}
	return ""
}
