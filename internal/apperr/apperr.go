// Package apperr defines the error type used throughout tl. Errors are
// declared once per package as sentinel values and given call-site context
// with Fmt or Wrap, both of which leave the sentinel itself untouched.
package apperr

import "fmt"

// Error is a sentinel application error. Message may contain printf verbs
// that are filled in with Fmt at the call site.
type Error struct {
	Cause   error
	Message string
	base    *Error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches an error against the sentinel it was derived from so that
// errors.Is continues to work on values returned by Fmt and Wrap.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e == t || e.root() == t.root()
}

// Fmt returns a copy of e with its message verbs filled in.
func (e *Error) Fmt(args ...any) *Error {
	return &Error{
		Message: fmt.Sprintf(e.Message, args...),
		base:    e.root(),
	}
}

// Wrap returns a copy of e with an underlying cause attached.
func (e *Error) Wrap(cause error) *Error {
	return &Error{
		Cause:   cause,
		Message: e.Message,
		base:    e.root(),
	}
}

func (e *Error) root() *Error {
	if e.base != nil {
		return e.base
	}

	return e
}
