// Copyright 2026 The gradereport Authors.
//
// SPDX-License-Identifier: Apache-2.0

package gradereport

import "errors"

var (
	// ErrCancelled is returned when the user dismisses a prompt.
	ErrCancelled = errors.New("cancelled by user")
	// ErrInvalidStudentRow is returned for a row that is not a number
	// or is outside of the student rows.
	ErrInvalidStudentRow = errors.New("invalid student row")
	// ErrInvalidEmail is returned for an address not matching ValidEmail.
	ErrInvalidEmail = errors.New("invalid email")
	// ErrMissingHeaderRow is returned when a column has no non-empty cell below row 1.
	ErrMissingHeaderRow = errors.New("no header found")
	// ErrRangeMismatch is returned when the sub-grade labels and values differ in width.
	ErrRangeMismatch = errors.New("sub-grade label and value ranges differ")
)

// AlertedError is an error the user has already been shown in an alert.
type AlertedError struct {
	Message string
	Err     error
}

func (e *AlertedError) Error() string { return e.Err.Error() }
func (e *AlertedError) Unwrap() error { return e.Err }
