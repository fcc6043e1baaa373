package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an application error. The HTTP layer maps kinds to status codes.
type Kind string

const (
	KindInvalidInput     Kind = "INVALID_INPUT"
	KindInvalidOperation Kind = "INVALID_OPERATION"
	KindConflict         Kind = "CONFLICT"
	KindRateLimited      Kind = "RATE_LIMITED"
	KindNotFound         Kind = "NOT_FOUND"
	KindForbidden        Kind = "FORBIDDEN"
	KindUnauthorized     Kind = "UNAUTHORIZED"
	KindInternal         Kind = "INTERNAL"
)

// Error is a domain rule violation carrying a user-facing detail message.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
// A target with an empty Detail matches any detail.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Detail == "" || t.Detail == e.Detail
}

// Wrap returns a copy of e that wraps err.
func (e *Error) Wrap(err error) *Error {
	return &Error{Kind: e.Kind, Detail: e.Detail, Err: err}
}

func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

func InvalidInput(detail string) *Error     { return New(KindInvalidInput, detail) }
func InvalidOperation(detail string) *Error { return New(KindInvalidOperation, detail) }
func Conflict(detail string) *Error         { return New(KindConflict, detail) }
func RateLimited(detail string) *Error      { return New(KindRateLimited, detail) }
func NotFound(detail string) *Error         { return New(KindNotFound, detail) }
func Forbidden(detail string) *Error        { return New(KindForbidden, detail) }
func Unauthorized(detail string) *Error     { return New(KindUnauthorized, detail) }

// Internal wraps an unexpected failure. The detail is never shown to clients.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Detail: "internal error", Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
