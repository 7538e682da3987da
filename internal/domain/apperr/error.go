// Package apperr holds the error taxonomy shared by the services and the HTTP layer.
package apperr

import (
	"errors"
)

var (
	ErrBadRequest   = errors.New("bad request")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

const (
	MsgBadRequest   = "Bad Request"
	MsgNotANumber   = "Input must be a number"
	MsgUnauthorized = "Unauthorized"
	MsgInternal     = "Internal Server Error"
)

// Error is a classified failure. Kind is one of the sentinels above and is
// what errors.Is matches against; Err keeps the underlying cause, if any.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func BadRequest(message string) *Error {
	return &Error{Kind: ErrBadRequest, Message: message}
}

// Invalid is a BadRequest carrying the validation failure as its cause.
func Invalid(err error) *Error {
	return &Error{Kind: ErrBadRequest, Message: MsgBadRequest, Err: err}
}

func NotFound(message string) *Error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: ErrConflict, Message: message}
}

func Unauthorized() *Error {
	return &Error{Kind: ErrUnauthorized, Message: MsgUnauthorized}
}

// Message returns the caller-facing text for err. Unclassified errors are
// reported as internal so their details never leak.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return MsgInternal
}
