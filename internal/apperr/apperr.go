// Package apperr defines the failure kinds handlers report and the HTTP
// status each one maps to.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies a failure.
type Kind int

const (
	Internal Kind = iota
	ValidationFailed
	NotFound
	NotAuthenticated
	Forbidden
	Conflict
)

func (k Kind) String() string {
	switch k {
	case ValidationFailed:
		return "validation_failed"
	case NotFound:
		return "not_found"
	case NotAuthenticated:
		return "not_authenticated"
	case Forbidden:
		return "forbidden"
	case Conflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Status returns the HTTP status code for k.
func (k Kind) Status() int {
	switch k {
	case ValidationFailed:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case NotAuthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified failure. Message is safe to show to clients; Detail,
// when set, replaces it in the response body. Err is the cause and is only logged.
type Error struct {
	Kind    Kind
	Message string
	Detail  any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Body returns what the client sees as the error message.
func (e *Error) Body() any {
	if e.Detail != nil {
		return e.Detail
	}
	return e.Message
}

// E builds an error of the given kind.
func E(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an Internal error carrying cause.
func Wrap(cause error, message string) *Error {
	return &Error{Kind: Internal, Message: message, Err: cause}
}

// Validation builds a ValidationFailed error whose body is detail.
func Validation(message string, detail any) *Error {
	return &Error{Kind: ValidationFailed, Message: message, Detail: detail}
}

// KindOf returns the kind of err, or Internal when err is not classified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}
