// Package apperr defines the error taxonomy surfaced to API clients.
// Callers should use errors.As / KindOf to match kinds.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	Internal Kind = iota
	NotFound
	Unauthenticated
	Forbidden
	Conflict
	InvalidArgument
	LimitExceeded
	TooLarge
	UnsupportedType
	InvalidState
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func E(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf reports the kind of err, or Internal for anything outside the taxonomy.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Internal
}

// Is lets sentinel-style matching work across wrapping.
func (e *Error) Is(target error) bool {
	var ae *Error
	if !errors.As(target, &ae) {
		return false
	}
	return e.Kind == ae.Kind
}
