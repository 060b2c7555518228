package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Application error codes. HTTP-shaped codes for generic failures, 1000+ for
// betting-specific ones.
const (
	CodeValidation          = 400
	CodeUnauthorized        = 401
	CodeForbidden           = 403
	CodeNotFound            = 404
	CodeConflict            = 409
	CodeInternal            = 500
	CodeInsufficientBalance = 1001
	CodeInvalidState        = 1002
	CodeAlreadyUsed         = 1003
	CodeExpired             = 1004
	CodePersistence         = 1005
)

// AppError carries an application code alongside the message so handlers can
// map failures to HTTP statuses without string matching.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Newf(code int, format string, args ...interface{}) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a new AppError.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// Validation is shorthand for a malformed-input error.
func Validation(message string) *AppError {
	return New(CodeValidation, message)
}

// InvalidState is shorthand for a wrong-lifecycle-state error.
func InvalidState(format string, args ...interface{}) *AppError {
	return Newf(CodeInvalidState, format, args...)
}

// Persistence wraps a storage failure. Nothing was applied; the caller may
// retry the whole operation.
func Persistence(err error) *AppError {
	return Wrap(err, CodePersistence, "storage operation failed, try again")
}

// AsAppError extracts an *AppError from err, or wraps it as an internal error.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, CodeInternal, "internal error")
}

// Code returns the application code of err, CodeInternal for plain errors.
func Code(err error) int {
	return AsAppError(err).Code
}

// HTTPStatus maps an application code to the HTTP status handlers respond with.
func HTTPStatus(code int) int {
	switch code {
	case CodeValidation, CodeInsufficientBalance:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeInvalidState, CodeAlreadyUsed, CodeExpired:
		return http.StatusConflict
	case CodePersistence:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
