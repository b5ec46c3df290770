// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package casefold normalizes identity strings (usernames, emails) so that
// lookups and uniqueness checks are case-insensitive across scripts.
//
// # Usage
//
// Apply [Fold] before every write AND every lookup of the same column; a value
// folded on one side only will never match.
package casefold

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Fold trims s, composes it to NFC and applies full Unicode case folding.
//
// # Transformation Pipeline
//
// 1. Trims surrounding whitespace.
// 2. Normalizes to NFC so composed and decomposed forms compare equal.
// 3. Case-folds ("Straße" → "strasse", "ÉCOLE" → "école").
func Fold(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}

	// cases.Caser is stateful; a fresh one per call keeps Fold goroutine-safe.
	folded := cases.Fold().String(norm.NFC.String(trimmed))
	return norm.NFC.String(folded)
}

// Equal reports whether a and b are equal after folding.
func Equal(a, b string) bool {
	return Fold(a) == Fold(b)
}
