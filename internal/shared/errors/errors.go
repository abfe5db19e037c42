package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// AppError represents an application error with additional context
type AppError struct {
	Code    string // Error code for output envelopes
	Message string // Human-readable message
	Err     error  // Underlying error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeNetwork    = "NETWORK_ERROR"
	ErrCodeHTTP       = "HTTP_ERROR"
	ErrCodeInvalidArg = "INVALID_ARGUMENT"
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeConfig     = "CONFIG_ERROR"
)

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// InvalidArgument creates an error for malformed command input
func InvalidArgument(message string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidArg,
		Message: message,
	}
}

// NetworkError is a transport failure: the request never produced a response.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPError is a response with a non-2xx status.
type HTTPError struct {
	Method string
	URL    string
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("http error: %s %s: status %d", e.Method, e.URL, e.Status)
	if body := strings.TrimSpace(e.Body); body != "" {
		msg += ": " + body
	}
	return msg
}

// ValidationError is a client-side check that failed before any request was made.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(e.Fields, ", "))
}

// Validation creates a validation error for the given empty fields
func Validation(message string, fields ...string) *ValidationError {
	return &ValidationError{
		Fields:  fields,
		Message: message,
	}
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	return 0
}

// IsNotFound reports whether err is an HTTP 404 from the remote API
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsNetworkError reports whether err is (or wraps) a transport failure
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// IsValidationError reports whether err is (or wraps) a validation failure
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// GetAppError extracts an AppError from an error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// Code classifies err into one of the error codes.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case IsValidationError(err):
		return ErrCodeValidation
	case IsNotFound(err):
		return ErrCodeNotFound
	case StatusCode(err) != 0:
		return ErrCodeHTTP
	case IsNetworkError(err):
		return ErrCodeNetwork
	}
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code
	}
	return ErrCodeInternal
}
