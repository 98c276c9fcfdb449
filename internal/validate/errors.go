// Package validate normalizes external identifier and date/time input into
// canonical values. Failures carry one of the error kinds below so callers
// can branch with errors.Is regardless of how much context was added on the
// way up.
package validate

import "errors"

var (
	// ErrInvalidFormat is returned when input does not have the expected shape.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrOutOfRange is returned when input is well-formed but semantically out
	// of bounds, e.g. February 30th or a value over its length ceiling.
	ErrOutOfRange = errors.New("out of range")

	// ErrWrongVersion is returned for identifiers that are not version 4.
	ErrWrongVersion = errors.New("wrong version")
)
