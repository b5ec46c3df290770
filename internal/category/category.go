// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package category manages the named groupings sites are filed under.

Sites reference a category by id without a foreign key, so deleting a
category never touches its sites.
*/
package category

import "time"

// # Core Entities

// Category is a named grouping of sites.
type Category struct {
	ID          string    `json:"id"` // UUIDv7
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateInput carries the fields accepted by [Service.Create].
type CreateInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// # Field Identifiers

const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldCategory    = "category"
)

// NameMaxLength bounds category names.
const NameMaxLength = 100

const resourceCategory = "Category"
