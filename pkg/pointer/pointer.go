// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer provides generic helpers for optional values.

Nullable columns (cover_image, description) travel as pointers between the
JSON layer and pgx. These helpers keep that plumbing out of service code.

Key Functions:
  - To: Creates a pointer from a value literal.
  - Val: Safely dereferences a pointer, returning the zero value if nil.
  - NilIfZero: Collapses a pointer to a zero value into nil.
*/
package pointer

// To returns a pointer to the provided value (e.g. pointer.To("docs")).
func To[T any](v T) *T {
	return &v
}

// Val safely dereferences a pointer.
// If the pointer is nil, it returns the zero value of the underlying type.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// NilIfZero returns nil when p is nil or points at the zero value, and p
// otherwise. An empty string in a JSON body therefore clears a nullable column.
func NilIfZero[T comparable](p *T) *T {
	var zero T
	if p == nil || *p == zero {
		return nil
	}
	return p
}
