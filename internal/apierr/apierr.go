package apierr

import (
	"fmt"
	"net/http"
)

const (
	CodeValidation         = "validation_error"
	CodeUnauthenticated    = "unauthenticated"
	CodeNotFound           = "not_found"
	CodeConflict           = "email_exists"
	CodeRateLimited        = "rate_limited"
	CodeServiceUnavailable = "service_unavailable"
	CodeInternal           = "internal_error"
)

// Error is an error with the HTTP status and machine code it should be answered with.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Validation(err error) *Error {
	return New(http.StatusBadRequest, CodeValidation, err)
}

func Unauthenticated(err error) *Error {
	return New(http.StatusUnauthorized, CodeUnauthenticated, err)
}

func NotFound(err error) *Error {
	return New(http.StatusNotFound, CodeNotFound, err)
}

// Internal hides err from the client. The cause stays available to server logs.
func Internal(err error) *Error {
	return New(http.StatusInternalServerError, CodeInternal, err)
}

// Message is what the client sees. Internal errors never expose their cause.
func (e *Error) Message() string {
	if e.Status >= http.StatusInternalServerError {
		return http.StatusText(e.Status)
	}
	return e.Error()
}
