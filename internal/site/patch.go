// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package site

import (
	"bytes"
	"encoding/json"

	"github.com/taibuivan/linkshelf/internal/platform/validate"
	"github.com/taibuivan/linkshelf/pkg/pointer"
)

// fieldAliases maps accepted client spellings onto storage field names.
// Keys absent from the table are used as written.
var fieldAliases = map[string]string{
	"siteUrl":     FieldSiteURL,
	"coverImage":  FieldCoverImage,
	"site_url":    FieldSiteURL,
	"cover_image": FieldCoverImage,
}

// mutableFields is the allow-list, in the order values are applied.
var mutableFields = []string{FieldSiteURL, FieldTitle, FieldCoverImage, FieldDescription, FieldCategory}

// Patch holds raw JSON values keyed by storage field name. It only ever
// contains allow-listed fields.
type Patch map[string]json.RawMessage

// NormalizePatch resolves aliases and drops every key outside the allow-list.
//
// When a canonical key and its alias are both present the canonical spelling
// wins, so the result does not depend on map iteration order.
func NormalizePatch(body map[string]json.RawMessage) Patch {
	patch := make(Patch, len(body))
	for key, value := range body {
		target, aliased := fieldAliases[key]
		if !aliased {
			target = key
		}
		if !isMutable(target) {
			continue
		}
		if _, taken := patch[target]; taken && key != target {
			continue
		}
		patch[target] = value
	}
	return patch
}

// Empty reports whether the patch changes nothing.
func (patch Patch) Empty() bool {
	return len(patch) == 0
}

// Apply decodes each value onto site. JSON null clears optional fields and
// empties required ones, which the subsequent validation then rejects.
func (patch Patch) Apply(site *Site) error {
	validator := &validate.Validator{}

	for _, field := range mutableFields {
		raw, present := patch[field]
		if !present {
			continue
		}

		value, ok := decodeString(raw)
		if !ok {
			validator.Custom(field, true, "Must be a string")
			continue
		}

		switch field {
		case FieldSiteURL:
			site.SiteURL = stringValue(value)
		case FieldTitle:
			site.Title = stringValue(value)
		case FieldCoverImage:
			site.CoverImage = optional(value)
		case FieldDescription:
			site.Description = optional(value)
		case FieldCategory:
			site.Category = stringValue(value)
		}
	}

	return validator.Err()
}

func isMutable(field string) bool {
	for _, candidate := range mutableFields {
		if candidate == field {
			return true
		}
	}
	return false
}

// decodeString accepts a JSON string or null. A nil result means null.
func decodeString(raw json.RawMessage) (*string, bool) {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, true
	}

	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, false
	}
	return &value, true
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

// optional maps null and the empty string to an absent value.
func optional(value *string) *string {
	return pointer.NilIfZero(value)
}
