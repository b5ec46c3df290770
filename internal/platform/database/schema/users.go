// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema holds the table and column names shared by the repositories
// and the migrations under platform/migration/sql.
package schema

// UserTable represents the 'users' table
type UserTable struct {
	Table        string
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    string
	UpdatedAt    string
}

// User is the schema definition for users
var User = UserTable{
	Table:        "users",
	ID:           "id",
	Username:     "username",
	Email:        "email",
	PasswordHash: "password_hash",
	Role:         "role",
	CreatedAt:    "created_at",
	UpdatedAt:    "updated_at",
}

// PublicColumns returns every column except the password hash.
func (t UserTable) PublicColumns() []string {
	return []string{t.ID, t.Username, t.Email, t.Role, t.CreatedAt, t.UpdatedAt}
}
