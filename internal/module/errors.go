// SPDX-License-Identifier: MPL-2.0

package module

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is the sentinel matched by *ArgumentError.
	ErrInvalidArgument = errors.New("invalid require argument")
	// ErrCannotResolve is the sentinel matched by *ResolutionError.
	ErrCannotResolve = errors.New("cannot resolve module")
	// ErrCannotLoad is the sentinel matched by *LoadError.
	ErrCannotLoad = errors.New("cannot load module")
)

type (
	// ArgumentError reports a require call with a missing or malformed
	// specifier or base directory. It is never wrapped with path context
	// because no resolution was attempted.
	ArgumentError struct {
		Message string
	}

	// ResolutionError reports that no candidate path satisfied the
	// resolution rules for a specifier.
	ResolutionError struct {
		Specifier string
		BaseDir   string
	}

	// LoadError reports that a specifier resolved but the file could not be
	// read, decoded or evaluated.
	LoadError struct {
		Specifier string
		Filename  string
		Cause     error
	}
)

func newArgumentError(msg string) *ArgumentError {
	return &ArgumentError{Message: msg}
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	return e.Message
}

// Is reports whether target is ErrInvalidArgument.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve module %q on path %q", e.Specifier, e.BaseDir)
}

// Is reports whether target is ErrCannotResolve.
func (e *ResolutionError) Is(target error) bool {
	return target == ErrCannotResolve
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	msg := fmt.Sprintf("cannot load module %q (%s)", e.Specifier, e.Filename)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying read, decode or evaluation error.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrCannotLoad.
func (e *LoadError) Is(target error) bool {
	return target == ErrCannotLoad
}

// validateArgs checks the shape of a require call's inputs.
func validateArgs(specifier, baseDir string) error {
	if specifier == "" {
		return newArgumentError("empty module name")
	}
	if baseDir == "" {
		return newArgumentError("empty module dir")
	}
	return nil
}
