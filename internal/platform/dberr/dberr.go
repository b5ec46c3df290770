// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/linkshelf/internal/platform/apperr"
)

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// keyDetail matches the DETAIL line of a unique violation: Key (email)=(ada@x.com) already exists.
var keyDetail = regexp.MustCompile(`Key \((.+?)\)=\((.*)\) already exists`)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	// 2. Unique violations become client errors
	if conflict := AsConflict(err); conflict != nil {
		return conflict
	}

	// 3. Everything else stays unexpected
	return fmt.Errorf("%s: %w", strings.ToLower(resource), err)
}

// IsUniqueViolation reports whether err carries a PostgreSQL unique_violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// AsConflict converts a unique violation into a Conflict naming the duplicated
// field and value. It returns nil for any other error.
func AsConflict(err error) *apperr.AppError {
	if !IsUniqueViolation(err) {
		return nil
	}

	var pgErr *pgconn.PgError
	errors.As(err, &pgErr)
	field, value := duplicateKey(pgErr)
	return apperr.Conflict("Duplicate field value", apperr.FieldError{
		Field:   field,
		Message: fmt.Sprintf("The value '%s' already exists. Please use another value.", value),
	}).WithCause(err)
}

// duplicateKey extracts the column and value from the violation detail,
// falling back to the constraint name (<table>_<column>_key).
func duplicateKey(pgErr *pgconn.PgError) (string, string) {
	if match := keyDetail.FindStringSubmatch(pgErr.Detail); match != nil {
		return match[1], match[2]
	}

	field := strings.TrimSuffix(pgErr.ConstraintName, "_key")
	if pgErr.TableName != "" {
		field = strings.TrimPrefix(field, pgErr.TableName+"_")
	}
	return field, ""
}
