// Package errs defines the error kinds shared between command handlers and
// the router. Handlers tag failures with a kind; the router decides how each
// kind is surfaced to the chat.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a handler failure.
type Kind string

const (
	// Malformed means the user-supplied text violates the required shape.
	Malformed Kind = "malformed"
	// OutOfRange means the input is well-formed but exceeds a safety bound.
	OutOfRange Kind = "out_of_range"
	// Unavailable means an external collaborator failed or timed out.
	Unavailable Kind = "unavailable"
)

// Error is a kinded error with a user-presentable message.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

// Malformedf creates a Malformed error.
func Malformedf(format string, args ...any) error {
	return &Error{Kind: Malformed, Msg: fmt.Sprintf(format, args...)}
}

// OutOfRangef creates an OutOfRange error.
func OutOfRangef(format string, args ...any) error {
	return &Error{Kind: OutOfRange, Msg: fmt.Sprintf(format, args...)}
}

// Unavailablef creates an Unavailable error.
func Unavailablef(format string, args ...any) error {
	return &Error{Kind: Unavailable, Msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind from an error chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
