// Package errors defines the coded errors that services return and handlers
// translate into HTTP responses.
//
// Services return values built here; handlers match them with the standard
// errors.Is against a sentinel or errors.As into *Error.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is the machine-readable kind of an Error.
type Code string

const (
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeValidation         Code = "VALIDATION"
	CodeDependencyConflict Code = "DEPENDENCY_CONFLICT"
	CodeStore              Code = "STORE"
	CodeTooManyRequests    Code = "TOO_MANY_REQUESTS"
	CodeInternal           Code = "INTERNAL"
)

var statusByCode = map[Code]int{
	CodeNotFound:           http.StatusNotFound,
	CodeAlreadyExists:      http.StatusConflict,
	CodeDependencyConflict: http.StatusConflict,
	CodeValidation:         http.StatusBadRequest,
	CodeTooManyRequests:    http.StatusTooManyRequests,
}

// HTTPStatus maps c to a response status. Unknown codes are 500.
func (c Code) HTTPStatus() int {
	if s, ok := statusByCode[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Error carries a Code, a user-facing message and optional details such as
// field errors or the ids of blocking dependents.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.cause.Error()
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches any *Error with the same Code, so errors.Is(err, ErrNotFound)
// holds for every not-found error regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	return errors.As(target, &t) && t.Code == e.Code
}

func (e *Error) HTTPStatus() int { return e.Code.HTTPStatus() }

// WithDetails returns a copy of e carrying details.
func (e *Error) WithDetails(details any) *Error {
	cp := *e
	cp.Details = details
	return &cp
}

// WithCause returns a copy of e wrapping err.
func (e *Error) WithCause(err error) *Error {
	cp := *e
	cp.cause = err
	return &cp
}

// Sentinels for errors.Is.
var (
	ErrNotFound           = New(CodeNotFound, "not found")
	ErrAlreadyExists      = New(CodeAlreadyExists, "already exists")
	ErrValidation         = New(CodeValidation, "validation error")
	ErrDependencyConflict = New(CodeDependencyConflict, "record has dependents")
	ErrStore              = New(CodeStore, "store failure")
	ErrInternal           = New(CodeInternal, "internal error")
)

func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

func NotFound(msg string) *Error { return New(CodeNotFound, msg) }

func NotFoundf(format string, args ...any) *Error {
	return New(CodeNotFound, fmt.Sprintf(format, args...))
}

func Validation(msg string) *Error { return New(CodeValidation, msg) }

// ValidationWithDetails is a validation error whose details are per-field messages.
func ValidationWithDetails(msg string, details any) *Error {
	return New(CodeValidation, msg).WithDetails(details)
}

// DependencyConflict reports a delete that is blocked; dependents lists what blocks it.
func DependencyConflict(msg string, dependents any) *Error {
	return New(CodeDependencyConflict, msg).WithDetails(dependents)
}

// Wrap attaches code and msg to err.
func Wrap(err error, code Code, msg string) *Error {
	return New(code, msg).WithCause(err)
}
