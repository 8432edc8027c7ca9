// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.
//
// The N42 library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The N42 library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the N42 library. If not, see <http://www.gnu.org/licenses/>.

// Package errors defines the error values shared across the engine's
// packages and wraps github.com/pkg/errors for the stack-trace-carrying
// helpers the rest of the codebase uses to add context to a failure as it
// propagates up the call tree.
package errors

import (
	stderrors "errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// =====================
// Backend Errors
// =====================

var (
	// ErrKeyNotFound is returned when a key is not found in the backing
	// key-value store.
	ErrKeyNotFound = stderrors.New("db: key not found")

	// ErrInvalidSize is returned when a fixed-width encoded number has an
	// unexpected byte length.
	ErrInvalidSize = stderrors.New("big endian number has an invalid size")
)

// =====================
// Helper Functions
// =====================

// Wrap annotates err with message and a stack trace captured at the call
// site.
func Wrap(err error, message string) error {
	return pkgerrors.Wrap(err, message)
}

// Wrapf annotates err with a formatted message and a stack trace captured
// at the call site.
func Wrapf(err error, format string, args ...interface{}) error {
	return pkgerrors.Wrapf(err, format, args...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// New returns an error that formats as the given text and carries a stack
// trace captured at the call site.
func New(text string) error {
	return pkgerrors.New(text)
}

// Errorf formats according to a format specifier and returns an error that
// carries a stack trace captured at the call site. A %w verb wraps its
// operand, so Is and As see through the result.
func Errorf(format string, a ...interface{}) error {
	return pkgerrors.WithStack(fmt.Errorf(format, a...))
}
