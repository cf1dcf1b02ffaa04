package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the stable machine-readable error category returned to API clients.
type Kind string

const (
	// KindNotFound means the referenced slot/session/token does not exist
	// (or, for tokens, exists but is no longer active).
	KindNotFound Kind = "not_found"

	// KindUnavailable means the resource exists but is not eligible right now:
	// occupied, reserved, inactive, sensor down, or a lost concurrent update.
	// Store-level timeouts also surface as Unavailable and may be retried.
	KindUnavailable Kind = "unavailable"

	// KindInvalidArgument means malformed input (bad duration, missing field).
	KindInvalidArgument Kind = "invalid_argument"

	// KindFailedPrecondition means a time-window or state rule was violated,
	// e.g. cancelling after the grace window.
	KindFailedPrecondition Kind = "failed_precondition"

	// KindConflict means a double-transition attempt on a terminal or
	// already-mutated entity.
	KindConflict Kind = "conflict"

	// KindInternal is everything else. Details stay server-side.
	KindInternal Kind = "internal"
)

// Error carries a kind plus a human-readable reason. Wrapped causes are kept
// for logs but never rendered to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches two *Errors by kind so errors.Is works with sentinel kinds.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Unavailable(format string, args ...interface{}) *Error {
	return &Error{Kind: KindUnavailable, Message: fmt.Sprintf(format, args...)}
}

func InvalidArgument(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

func FailedPrecondition(format string, args ...interface{}) *Error {
	return &Error{Kind: KindFailedPrecondition, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// Wrap attaches a cause to a kinded error without changing its kind.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf extracts the kind from any error; plain errors are Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the client-safe reason for an error.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}

func IsNotFound(err error) bool           { return KindOf(err) == KindNotFound }
func IsUnavailable(err error) bool        { return KindOf(err) == KindUnavailable }
func IsInvalidArgument(err error) bool    { return KindOf(err) == KindInvalidArgument }
func IsFailedPrecondition(err error) bool { return KindOf(err) == KindFailedPrecondition }
func IsConflict(err error) bool           { return KindOf(err) == KindConflict }

// HTTPStatus maps an error kind to the HTTP status controllers respond with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindFailedPrecondition:
		return http.StatusUnprocessableEntity
	case KindConflict:
		return http.StatusConflict
	case KindUnavailable:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
