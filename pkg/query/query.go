// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses list-shaped URL query parameters.
package query

import (
	"strings"
)

// StringSlice parses a single comma-separated query string
// into a trimmed slice of strings. Empty entries are dropped.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}

// SortField is one entry of a sort expression such as "-created_at".
type SortField struct {
	Field      string
	Descending bool
}

// Sort parses a comma-separated sort expression. A leading "-" selects
// descending order and a leading "+" is accepted and ignored.
//
// Field names are returned as written; whitelisting is the caller's job.
func Sort(val string) []SortField {
	entries := StringSlice(val)
	if len(entries) == 0 {
		return nil
	}

	fields := make([]SortField, 0, len(entries))
	for _, entry := range entries {
		field := SortField{Field: entry}
		switch {
		case strings.HasPrefix(entry, "-"):
			field = SortField{Field: strings.TrimSpace(entry[1:]), Descending: true}
		case strings.HasPrefix(entry, "+"):
			field.Field = strings.TrimSpace(entry[1:])
		}
		fields = append(fields, field)
	}
	return fields
}

// FirstNonEmpty returns the first non-blank value among keys, trimmed.
// Used where several query parameter names are accepted as aliases.
func FirstNonEmpty(values map[string][]string, keys ...string) string {
	for _, key := range keys {
		for _, value := range values[key] {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}
