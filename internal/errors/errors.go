// Package errors defines typed errors with categories for user-friendly reporting.
// Every failure in the magic-argument parsing path carries the InvalidArgument
// kind together with a descriptive message; remote collaborators (cloud storage,
// the whistle service) surface NotFound and Unavailable.
//
// The package supports wrapping underlying errors while maintaining error kind
// information, making it easier to handle different types of failures
// appropriately.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// InvalidArgument indicates a malformed or unsupported command argument.
	InvalidArgument Kind = "invalid_argument"
	// NotFound indicates a missing remote resource (bucket, blob, store).
	NotFound Kind = "not_found"
	// Unavailable indicates the translation service could not be reached.
	Unavailable Kind = "unavailable"
)

// E wraps an error with kind and human-friendly message.
type E struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *E) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// Newf is New with fmt.Sprintf formatting of the message.
func Newf(kind Kind, format string, args ...any) *E {
	return &E{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the Kind carried by err, or "" when err has none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}
