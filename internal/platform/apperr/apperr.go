// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error type for the Linkshelf API.

Every failure that leaves a service is either an [*AppError] or an unexpected
error that the response layer later classifies into one.

Architecture:

  - Kind: A closed set of variants, one per failure family exposed to clients.
  - AppError: Carries the variant, a machine-readable code, a client-safe message
    and the HTTP status the variant maps to.
  - Operational: Marks failures that are expected and safe to show verbatim.

The response layer pattern-matches on [Kind], never on message strings.
*/
package apperr

import (
	"errors"
	"net/http"
	"runtime/debug"
)

// # Variants

// Kind identifies the failure family of an [AppError].
type Kind int

const (
	// KindInternal is an unexpected or programming error.
	KindInternal Kind = iota
	// KindValidation carries per-field validation messages.
	KindValidation
	// KindBadRequest covers malformed identifiers, filters and bodies.
	KindBadRequest
	// KindUnauthorized covers missing, invalid and expired credentials.
	KindUnauthorized
	// KindForbidden is a role mismatch.
	KindForbidden
	// KindNotFound is a missing record.
	KindNotFound
	// KindConflict is a duplicate unique field.
	KindConflict
	// KindUpload is an oversized or malformed multipart body.
	KindUpload
	// KindGeneration is the AI provider failure family.
	KindGeneration
	// KindRateLimited is a quota or request-rate rejection.
	KindRateLimited
)

var kindNames = map[Kind]string{
	KindInternal:     "InternalError",
	KindValidation:   "ValidationError",
	KindBadRequest:   "BadRequestError",
	KindUnauthorized: "UnauthorizedError",
	KindForbidden:    "ForbiddenError",
	KindNotFound:     "NotFoundError",
	KindConflict:     "ConflictError",
	KindUpload:       "UploadError",
	KindGeneration:   "GenerationError",
	KindRateLimited:  "RateLimitError",
}

// String returns the variant name used in verbose error responses and logs.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindInternal]
}

// ErrMalformedID marks a NotFound that was produced by an identifier that
// failed to parse, as opposed to a well-formed identifier with no record.
var ErrMalformedID = errors.New("malformed identifier")

// # Error Type

// AppError is the canonical error type for the Linkshelf API.
//
// # Security
//
// Cause and Stack are for server-side logging only and are never sent to
// clients in strict mode.
type AppError struct {
	// Kind is the variant used by the response layer.
	Kind Kind `json:"-"`
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"message"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field messages for validation and conflict errors.
	Details []FieldError `json:"errors,omitempty"`
	// Operational reports whether the failure is expected and its message safe to expose.
	Operational bool `json:"-"`
	// Stack is captured for non-operational errors.
	Stack string `json:"-"`
}

// FieldError represents a single field-level failure.
type FieldError struct {
	// Field is the JSON field name that failed.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause returns a copy of e carrying cause.
func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

// Status is "fail" for client errors and "error" for server errors.
func (e *AppError) Status() string {
	if e.HTTPStatus >= http.StatusInternalServerError {
		return "error"
	}
	return "fail"
}

func newOperational(kind Kind, code string, status int, message string) *AppError {
	return &AppError{
		Kind:        kind,
		Code:        code,
		Message:     message,
		HTTPStatus:  status,
		Operational: true,
	}
}

// # Client Errors (4xx)

// Validation creates a 400 [AppError] with per-field details.
func Validation(details ...FieldError) *AppError {
	appError := newOperational(KindValidation, "VALIDATION_ERROR", http.StatusBadRequest, "Validation Error")
	appError.Details = details
	return appError
}

// BadRequest creates a 400 [AppError] for malformed input that is not a field-level failure.
func BadRequest(msg string) *AppError {
	return newOperational(KindBadRequest, "BAD_REQUEST", http.StatusBadRequest, msg)
}

// Unauthorized creates a 401 [AppError].
func Unauthorized(msg string) *AppError {
	return newOperational(KindUnauthorized, "UNAUTHORIZED", http.StatusUnauthorized, msg)
}

// Forbidden creates a 403 [AppError].
func Forbidden(msg string) *AppError {
	return newOperational(KindForbidden, "FORBIDDEN", http.StatusForbidden, msg)
}

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Site") // Returns "Site not found"
func NotFound(resource string) *AppError {
	return newOperational(KindNotFound, "NOT_FOUND", http.StatusNotFound, resource+" not found")
}

// Conflict creates an [AppError] for duplicate or unique-constraint violations.
//
// Duplicates are reported as 400, not 409; clients of this API depend on it.
func Conflict(msg string, details ...FieldError) *AppError {
	appError := newOperational(KindConflict, "DUPLICATE_KEY", http.StatusBadRequest, msg)
	appError.Details = details
	return appError
}

// Upload creates a 400 [AppError] for rejected multipart bodies.
func Upload(code, msg string) *AppError {
	return newOperational(KindUpload, code, http.StatusBadRequest, msg)
}

// Generation creates an [AppError] in the AI provider failure family.
// Status varies per failure (400, 401, 408, 429, 500).
func Generation(status int, code, msg string) *AppError {
	return newOperational(KindGeneration, code, status, msg)
}

// RateLimited creates a 429 [AppError].
func RateLimited(msg string) *AppError {
	return newOperational(KindRateLimited, "RATE_LIMITED", http.StatusTooManyRequests, msg)
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause and the current stack are stored for logging.
func Internal(cause error) *AppError {
	return &AppError{
		Kind:       KindInternal,
		Code:       "INTERNAL_ERROR",
		Message:    "Something went wrong!",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
		Stack:      string(debug.Stack()),
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// KindOf returns the [Kind] of err, or [KindInternal] when err is not an [*AppError].
func KindOf(err error) Kind {
	if ae := As(err); ae != nil {
		return ae.Kind
	}
	return KindInternal
}
