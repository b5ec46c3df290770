// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// SiteTable represents the 'sites' table
type SiteTable struct {
	Table       string
	ID          string
	SiteURL     string
	Title       string
	CoverImage  string
	Description string
	Category    string
	CreatedAt   string
	UpdatedAt   string
}

// Site is the schema definition for sites
var Site = SiteTable{
	Table:       "sites",
	ID:          "id",
	SiteURL:     "site_url",
	Title:       "title",
	CoverImage:  "cover_image",
	Description: "description",
	Category:    "category",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

// Columns returns all column names in scan order.
func (t SiteTable) Columns() []string {
	return []string{t.ID, t.SiteURL, t.Title, t.CoverImage, t.Description, t.Category, t.CreatedAt, t.UpdatedAt}
}

// Sortable returns the columns a client may order a site listing by.
func (t SiteTable) Sortable() []string {
	return []string{t.Title, t.SiteURL, t.CreatedAt, t.UpdatedAt}
}
