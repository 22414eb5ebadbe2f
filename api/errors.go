// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for hioload-cdc.

package api

import (
	"errors"
	"fmt"
)

// Common errors used across the library.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotSupported    = errors.New("operation not supported")
	ErrDesynchronized  = errors.New("clock domains desynchronized")
	ErrMismatch        = errors.New("dequeued data mismatch")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeNotSupported
	ErrCodeDesync
	ErrCodeMismatch
	ErrCodeInternal
)

func (c ErrorCode) String() string {
	switch c {
	case ErrCodeOK:
		return "ok"
	case ErrCodeInvalidArgument:
		return "invalid-argument"
	case ErrCodeNotSupported:
		return "not-supported"
	case ErrCodeDesync:
		return "desync"
	case ErrCodeMismatch:
		return "mismatch"
	default:
		return "internal"
	}
}

// sentinel maps codes to the package-level errors so errors.Is works on
// structured errors.
func (c ErrorCode) sentinel() error {
	switch c {
	case ErrCodeInvalidArgument:
		return ErrInvalidArgument
	case ErrCodeNotSupported:
		return ErrNotSupported
	case ErrCodeDesync:
		return ErrDesynchronized
	case ErrCodeMismatch:
		return ErrMismatch
	default:
		return nil
	}
}

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// Unwrap returns the wrapped cause and the sentinel of the error code.
func (e *Error) Unwrap() []error {
	var errs []error
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	if s := e.Code.sentinel(); s != nil {
		errs = append(errs, s)
	}
	return errs
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// WithCause sets the error returned by Unwrap.
func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}
