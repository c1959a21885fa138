package apperror

import (
	"errors"
	"fmt"
	"runtime"
)

// AppError is the categorized failure returned across the gateway boundary.
type AppError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	Cause     error  `json:"-"`
	File      string `json:"file,omitempty"`
	Line      int    `json:"line,omitempty"`
	Operation string `json:"operation,omitempty"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithOperation adds operation context to the error
func (e *AppError) WithOperation(operation string) *AppError {
	e.Operation = operation
	return e
}

const (
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeUpstream is the single fallback category for anything the
	// scoring engine raised. The engine error is kept as Cause.
	ErrCodeUpstream = "UPSTREAM_ERROR"
)

func New(code, message string, cause error) *AppError {
	_, file, line, _ := runtime.Caller(1)
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
		File:    file,
		Line:    line,
	}
}

func Validation(message string, details any) *AppError {
	e := New(ErrCodeValidation, message, nil)
	e.Details = details
	return e
}

// Upstream wraps an engine failure. Message is the failure text verbatim.
func Upstream(cause error) *AppError {
	message := "upstream failure"
	if cause != nil {
		message = cause.Error()
	}
	return New(ErrCodeUpstream, message, cause)
}

// As returns the *AppError in err's chain, if any.
func As(err error) (*AppError, bool) {
	var e *AppError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func IsValidation(err error) bool {
	e, ok := As(err)
	return ok && e.Code == ErrCodeValidation
}

func IsUpstream(err error) bool {
	e, ok := As(err)
	return ok && e.Code == ErrCodeUpstream
}
