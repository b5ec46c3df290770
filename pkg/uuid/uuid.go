// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides time-ordered unique identifiers for the platform.

It wraps the standard UUID library to generate Version 7 values, which are
naturally ordered by creation time and keep PostgreSQL B-tree indexes compact.
*/
package uuid

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrMalformed wraps every parse failure, whatever the underlying cause.
var ErrMalformed = errors.New("uuid: malformed identifier")

// # Generators

// New generates a new UUIDv7 string.
func New() string {
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}

	return id.String()
}

// # Validation

// Parse returns the lower-case hyphenated form of s. Failures match [ErrMalformed].
func Parse(s string) (string, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return id.String(), nil
}

// Valid reports whether s is a well-formed identifier.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Canonical returns the lower-case hyphenated form of s, or false when s is malformed.
func Canonical(s string) (string, bool) {
	id, err := Parse(s)
	return id, err == nil
}
