package rpcerrs

import (
	"errors"
	"fmt"
)

// BaseError is the concrete error type for every failure this module
// produces. It carries a category, a code, and an optional cause.
type BaseError struct {
	code     ErrorCode
	category ErrorCategory
	message  string
	cause    error
}

// NewBaseError creates a new base error.
func NewBaseError(
	category ErrorCategory,
	code ErrorCode,
	message string,
	cause error,
) *BaseError {
	return &BaseError{
		code:     code,
		category: category,
		message:  message,
		cause:    cause,
	}
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.category, e.message, e.cause)
	}

	return fmt.Sprintf("%s: %s", e.category, e.message)
}

// Code returns the error code.
func (e *BaseError) Code() ErrorCode {
	return e.code
}

// Category returns the error category.
func (e *BaseError) Category() ErrorCategory {
	return e.category
}

// Unwrap returns the underlying error.
func (e *BaseError) Unwrap() error {
	return e.cause
}

func hasCode(err error, code ErrorCode) bool {
	var base *BaseError
	if errors.As(err, &base) {
		return base.code == code
	}

	return false
}
