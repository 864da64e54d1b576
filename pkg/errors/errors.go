// Copyright © 2018 One Concern

// Package errors defines the error taxonomy of the release diff tool and a
// small wrappable error type so sentinel values can carry a cause without
// resorting to fmt.Errorf("%w", err) at every call site.
package errors

import (
	stderr "errors"
)

var _ error = New("")

// Sentinels for the resolution failures (space, project, release lookup)
// that terminate a run before any reconciliation.
var (
	// ErrSpaceNotFound indicates the named space does not exist upstream.
	ErrSpaceNotFound = New("space not found")

	// ErrProjectNotFound indicates the named project does not exist in the space.
	ErrProjectNotFound = New("project not found")

	// ErrReleaseNotFound indicates an explicitly named release version does not exist.
	ErrReleaseNotFound = New("release not found")

	// ErrNotEnoughReleases indicates the project has fewer than two releases to compare.
	ErrNotEnoughReleases = New("project needs at least two releases to compare")
)

// New builds an Error from a message.
func New(msg string) *Error {
	return &Error{msg: msg}
}

// Error is a message with an optional wrapped cause. Deriving from a
// sentinel with Wrap or WithDetail keeps errors.Is matching the sentinel
// while the cause and detail remain reachable.
type Error struct {
	msg      string
	err      error
	sentinel *Error
}

// Error message
func (e *Error) Error() string {
	return e.msg
}

// Unwrap nested error
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// Wrap returns a copy of e carrying err as its cause. The receiver is left
// untouched so package-level sentinels stay immutable.
func (e *Error) Wrap(err error) *Error {
	return &Error{msg: e.msg, err: err, sentinel: e.root()}
}

// WithDetail returns a copy of e with call-site detail appended to the message.
func (e *Error) WithDetail(detail string) *Error {
	return &Error{msg: e.msg + ": " + detail, err: e.err, sentinel: e.root()}
}

func (e *Error) root() *Error {
	if e.sentinel != nil {
		return e.sentinel
	}
	return e
}

// Is reports whether target is e, its cause, or the sentinel e derives from.
func (e *Error) Is(target error) bool {
	return e == target || e.err == target || (e.sentinel != nil && e.sentinel == target)
}

// As finds the first error in err's chain that matches target
// (a shortcut to the standard lib errors.As)
func As(err error, target interface{}) bool {
	return stderr.As(err, target)
}

// Is reports whether any error in err's chain matches target
// (a shortcut to the standard lib errors.Is)
func Is(err, target error) bool {
	return stderr.Is(err, target)
}
