// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CategoryTable represents the 'categories' table
type CategoryTable struct {
	Table       string
	ID          string
	Name        string
	Description string
	CreatedAt   string
	UpdatedAt   string
}

// Category is the schema definition for categories
var Category = CategoryTable{
	Table:       "categories",
	ID:          "id",
	Name:        "name",
	Description: "description",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

func (t CategoryTable) Columns() []string {
	return []string{t.ID, t.Name, t.Description, t.CreatedAt, t.UpdatedAt}
}
