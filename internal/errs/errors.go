// Package errs is the error vocabulary shared by the catalog drivers, the
// output sinks, the pretty printer and their callers.
//
// Subsystems return *Error values whose Kind says what went wrong in terms a
// caller can act on (exit status, HTTP status, retry hint) while Cause keeps
// the native driver error for logs.
//
//	if errs.IsNotFound(err) {
//	    // unknown table, bucket or object
//	}
package errs

import (
	"errors"
	"fmt"
)

// ErrKind classifies a failure independently of the backend that produced it.
type ErrKind int

const (
	ErrKindUnknown ErrKind = iota
	ErrKindNotFound
	ErrKindConnectionFailed
	ErrKindTimeout
	ErrKindQueryFailed
	ErrKindInvalidInput
	ErrKindPermissionDenied
	ErrKindFormatFailed
)

var kindNames = [...]string{
	ErrKindUnknown:          "unknown",
	ErrKindNotFound:         "not_found",
	ErrKindConnectionFailed: "connection_failed",
	ErrKindTimeout:          "timeout",
	ErrKindQueryFailed:      "query_failed",
	ErrKindInvalidInput:     "invalid_input",
	ErrKindPermissionDenied: "permission_denied",
	ErrKindFormatFailed:     "format_failed",
}

func (k ErrKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[ErrKindUnknown]
	}
	return kindNames[k]
}

// Error carries a kind, a human message and the native cause, if any.
type Error struct {
	Kind    ErrKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := "[" + e.Kind.String() + "] " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches another *Error of the same kind, so a bare New(kind, "") works
// as a target for errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Message == "" && t.Cause == nil && t.Kind == e.Kind
}

// New returns an error without a cause.
func New(kind ErrKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Newf is New with a format string.
func Newf(kind ErrKind, format string, args ...any) *Error {
	return New(kind, fmt.Sprintf(format, args...))
}

// Wrap returns an error that keeps cause for errors.Is/As and logging.
func Wrap(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// KindOf returns the kind of the first *Error in err's chain, or
// ErrKindUnknown.
func KindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrKindUnknown
}

// IsNotFound reports an unknown table, bucket or object.
func IsNotFound(err error) bool { return KindOf(err) == ErrKindNotFound }

// IsConnectionFailed reports an unreachable backend or rejected login.
func IsConnectionFailed(err error) bool { return KindOf(err) == ErrKindConnectionFailed }

// IsTimeout reports a deadline or cancellation.
func IsTimeout(err error) bool { return KindOf(err) == ErrKindTimeout }

// IsQueryFailed reports a failed catalog query or storage operation.
func IsQueryFailed(err error) bool { return KindOf(err) == ErrKindQueryFailed }

// IsInvalidInput reports bad arguments, such as a malformed connection string.
func IsInvalidInput(err error) bool { return KindOf(err) == ErrKindInvalidInput }

// IsPermissionDenied reports an access control failure.
func IsPermissionDenied(err error) bool { return KindOf(err) == ErrKindPermissionDenied }

// IsFormatFailed reports output the pretty printer rejected.
func IsFormatFailed(err error) bool { return KindOf(err) == ErrKindFormatFailed }
