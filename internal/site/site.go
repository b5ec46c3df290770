// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package site manages bookmark records ("sites") filed under a category.

# Core Responsibility

  - Records: Defines the [Site] entity and its validation rules.
  - Patching: Maps client field names onto storage names through an explicit
    alias table, then filters them through an allow-list ([NormalizePatch]).
  - Listing: Category filter, escaped title search, whitelisted sort and
    page-based pagination.
*/
package site

import (
	"time"

	"github.com/taibuivan/linkshelf/pkg/pagination"
)

// # Core Entities

// Site is a bookmark record.
type Site struct {
	ID          string    `json:"id"` // UUIDv7
	SiteURL     string    `json:"site_url"`
	Title       string    `json:"title"`
	CoverImage  *string   `json:"cover_image"`
	Description *string   `json:"description"`
	Category    string    `json:"category"` // Category id, not enforced by the database
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// # Search & Filtering

// ListQuery is the raw, unvalidated listing request.
type ListQuery struct {
	Category string
	Search   string
	Sort     string
	Page     pagination.Params
}

// Filter is a validated listing filter handed to the [Repository].
type Filter struct {
	Category string
	Search   string // Raw term; the store escapes it for pattern matching
	Order    []Order
}

// Order is one whitelisted ORDER BY term.
type Order struct {
	Column     string
	Descending bool
}

// # Field Identifiers

const (
	FieldSiteURL     = "site_url"
	FieldTitle       = "title"
	FieldCoverImage  = "cover_image"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldSite        = "site"
	FieldSort        = "sort"
)

const resourceSite = "Site"
