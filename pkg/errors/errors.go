package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a stable error code for programmatic handling.
type Code string

const (
	CodeUnknown       Code = "unknown"
	CodeInvalid       Code = "invalid"
	CodeNotFound      Code = "not_found"
	CodeConflict      Code = "conflict"
	CodeInternal      Code = "internal"
	CodeUnavailable   Code = "unavailable"
	CodeAlreadyExists Code = "already_exists"
)

var codeStatus = map[Code]int{
	CodeInvalid:       http.StatusBadRequest,
	CodeNotFound:      http.StatusNotFound,
	CodeConflict:      http.StatusConflict,
	CodeAlreadyExists: http.StatusConflict,
	CodeUnavailable:   http.StatusServiceUnavailable,
}

// AppError carries a code, a message for logs, the driver or library error
// behind it, and optional metadata such as the column a write collided with.
type AppError struct {
	Code    Code
	Message string
	Err     error
	Meta    map[string]any
}

func (e *AppError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// WithMeta attaches metadata to the error.
func (e *AppError) WithMeta(k string, v any) *AppError {
	if e.Meta == nil {
		e.Meta = map[string]any{}
	}
	e.Meta[k] = v
	return e
}

func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap attaches code and message to err. A nil err yields a plain New.
func Wrap(err error, code Code, message string) *AppError {
	if err == nil {
		return New(code, message)
	}
	return &AppError{Code: code, Message: message, Err: err}
}

func as(err error) (*AppError, bool) {
	var ae *AppError
	ok := errors.As(err, &ae)
	return ae, ok
}

// IsCode checks if an error has the provided code (through unwrapping).
func IsCode(err error, code Code) bool {
	ae, ok := as(err)
	return ok && ae.Code == code
}

// CodeOf returns the code of the first AppError in the chain, or CodeUnknown.
func CodeOf(err error) Code {
	if ae, ok := as(err); ok {
		return ae.Code
	}
	return CodeUnknown
}

// HTTPStatus maps err's code onto a response status; unmapped codes are 500.
func HTTPStatus(err error) int {
	if s, ok := codeStatus[CodeOf(err)]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// MetaString returns the string metadata stored under key on the first
// AppError in the chain.
func MetaString(err error, key string) (string, bool) {
	ae, ok := as(err)
	if !ok || ae.Meta == nil {
		return "", false
	}
	s, ok := ae.Meta[key].(string)
	return s, ok
}

// Cause returns the driver-level error behind an AppError, or err itself.
func Cause(err error) error {
	if ae, ok := as(err); ok && ae.Err != nil {
		return ae.Err
	}
	return err
}
