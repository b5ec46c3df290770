// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "context"

// # User Data Access

// UserRepository defines the persistence contract for accounts.
//
// Plain passwords cross this boundary only on Create and UpdatePassword; the
// implementation hashes them exactly once, immediately before writing.
type UserRepository interface {

	/*
		Create hashes plainPassword and inserts the user.

		Parameters:
		  - context: context.Context
		  - user: *User (ID, Username, Email, Role set; timestamps are filled in)
		  - plainPassword: string

		Returns:
		  - error: Conflict on a duplicate username or email
	*/
	Create(context context.Context, user *User, plainPassword string) error

	/*
		UpdatePassword hashes plainPassword and replaces the stored hash.

		Parameters:
		  - context: context.Context
		  - id: string (UUIDv7)
		  - plainPassword: string

		Returns:
		  - error: NotFound if the user does not exist
	*/
	UpdatePassword(context context.Context, id, plainPassword string) error

	/*
		FindByID retrieves a user without the password hash.

		Parameters:
		  - context: context.Context
		  - id: string (UUIDv7)

		Returns:
		  - *User: PasswordHash is always empty
		  - error: NotFound if missing
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmailWithPassword retrieves a user including the password hash.

		Parameters:
		  - context: context.Context
		  - email: string (already case-folded)

		Returns:
		  - *User: Hydrated entity with PasswordHash
		  - error: NotFound if missing
	*/
	FindByEmailWithPassword(context context.Context, email string) (*User, error)

	/*
		ExistsByEmailOrUsername reports whether either identity field is taken.

		Parameters:
		  - context: context.Context
		  - email, username: string (already case-folded)

		Returns:
		  - bool: true if any account matches either value
		  - error: Database failures
	*/
	ExistsByEmailOrUsername(context context.Context, email, username string) (bool, error)
}
