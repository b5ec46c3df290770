// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements account identity: signup, login, token refresh and
the identity lookups behind the bearer middleware.

# Architecture

  - [User] is the stored account; its password hash never leaves this package
    in a response.
  - [UserRepository] persists accounts and owns the one place a plain password
    is turned into a hash.
  - [Service] issues and verifies tokens through [sec.TokenService].
  - [Handler] maps the service onto /api/auth and manages the refresh cookie.
*/
package auth

import (
	"time"

	"github.com/taibuivan/linkshelf/internal/platform/sec"
)

// # Domain Entities

// User represents a registered account.
type User struct {
	ID           string    `json:"id"` // UUIDv7
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         sec.Role  `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"-"`
}

// Identity projects the user onto the claims carried by tokens and requests.
func (user *User) Identity() sec.Identity {
	return sec.Identity{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}
}

// Session is the result of a successful signup or login.
type Session struct {
	User             *User
	AccessToken      string
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// # Constraints

const (
	UsernameMinLength = 3
	UsernameMaxLength = 30
	PasswordMinLength = 6
)

// # Field Identifiers

const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldCurrentPassword = "currentPassword"
	FieldNewPassword     = "newPassword"
)

// # Outward Messages

const (
	msgDuplicateIdentity  = "User with this email or username already exists"
	msgInvalidCredentials = "Invalid credentials"
	msgNoRefreshToken     = "No refresh token provided"
	msgInvalidRefresh     = "Invalid or expired refresh token"
	msgWrongPassword      = "Current password is incorrect"
)
