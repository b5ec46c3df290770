// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// Role represents the authorization level granted to an account.
type Role string

const (
	// RoleAdmin may manage categories and sites and use the AI generator.
	RoleAdmin Role = "admin"

	// RoleUser is the non-privileged role.
	RoleUser Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}

// In reports whether r is a member of allowed.
func (r Role) In(allowed ...Role) bool {
	for _, candidate := range allowed {
		if r == candidate {
			return true
		}
	}
	return false
}

// # Identity

// Identity is the resolved caller attached to a request after authentication.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}
