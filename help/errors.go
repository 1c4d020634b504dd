package help

import (
	"errors"
	"fmt"

	"github.com/bitmark-inc/mutual-aid-api/store"
)

// Kind is the stable category of a failure
type Kind string

const (
	KindValidation    Kind = "validation"
	KindNotFound      Kind = "not_found"
	KindAuthorization Kind = "authorization"
	KindInvalidState  Kind = "invalid_state"
	KindConflict      Kind = "conflict"
	KindDependency    Kind = "dependency"
)

// Error is returned by every coordinator operation that fails
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err. Errors not raised by this package are
// dependency failures.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindDependency
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func validationError(format string, args ...interface{}) *Error {
	return newError(KindValidation, format, args...)
}

func notFound(format string, args ...interface{}) *Error {
	return newError(KindNotFound, format, args...)
}

func unauthorized(format string, args ...interface{}) *Error {
	return newError(KindAuthorization, format, args...)
}

func invalidState(format string, args ...interface{}) *Error {
	return newError(KindInvalidState, format, args...)
}

func conflict(format string, args ...interface{}) *Error {
	return newError(KindConflict, format, args...)
}

// dependencyError wraps a failure of the store. Missing documents become
// NotFound errors.
func dependencyError(err error, message string) *Error {
	switch {
	case errors.Is(err, store.ErrHelpRequestNotFound):
		return notFound("help request not found")
	case errors.Is(err, store.ErrSessionNotFound):
		return notFound("session not found")
	case errors.Is(err, store.ErrUserNotFound):
		return notFound("user not found")
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return &Error{Kind: KindDependency, Message: message, Err: err}
}
