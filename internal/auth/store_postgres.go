// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/linkshelf/internal/platform/apperr"
	"github.com/taibuivan/linkshelf/internal/platform/database/schema"
	"github.com/taibuivan/linkshelf/internal/platform/dberr"
	"github.com/taibuivan/linkshelf/internal/platform/sec"
	"github.com/taibuivan/linkshelf/pkg/uuid"
)

const resourceUser = "User"

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepository constructs a PostgreSQL backed account store.
func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// publicSelect lists the columns returned by identity lookups (no hash).
var publicSelect = strings.Join(schema.User.PublicColumns(), ", ")

// # User Mutation

/*
Create hashes the password and inserts a new account.

Parameters:
  - context: context.Context
  - user: *User
  - plainPassword: string

Returns:
  - error: Conflict on duplicate username/email, or persistence failures
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User, plainPassword string) error {
	hash, err := sec.HashPassword(plainPassword)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.User.Table,
		schema.User.ID, schema.User.Username, schema.User.Email, schema.User.PasswordHash, schema.User.Role,
		schema.User.CreatedAt, schema.User.UpdatedAt,
		schema.User.CreatedAt, schema.User.UpdatedAt,
	)

	err = repository.pool.QueryRow(context, query,
		user.ID, user.Username, user.Email, hash, user.Role,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, resourceUser)
	}

	return nil
}

/*
UpdatePassword hashes and stores a new password.

Parameters:
  - context: context.Context
  - id: string
  - plainPassword: string

Returns:
  - error: NotFound if no row matched
*/
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, id, plainPassword string) error {
	if !uuid.Valid(id) {
		return apperr.NotFound(resourceUser).WithCause(apperr.ErrMalformedID)
	}

	hash, err := sec.HashPassword(plainPassword)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.User.Table, schema.User.PasswordHash, schema.User.UpdatedAt, schema.User.ID)

	tag, err := repository.pool.Exec(context, query, id, hash)
	if err != nil {
		return dberr.Wrap(err, resourceUser)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceUser)
	}

	return nil
}

// # User Retrieval

/*
FindByID retrieves an account without its password hash.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *User: Hydrated entity
  - error: NotFound if missing or malformed
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound(resourceUser).WithCause(apperr.ErrMalformedID)
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, publicSelect, schema.User.Table, schema.User.ID)

	user := &User{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&user.ID, &user.Username, &user.Email, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, resourceUser)
	}
	return user, nil
}

/*
FindByEmailWithPassword retrieves an account including its password hash.
Only the login and password-change flows call this.
*/
func (repository *PostgresUserRepository) FindByEmailWithPassword(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1`,
		publicSelect, schema.User.PasswordHash, schema.User.Table, schema.User.Email)

	user := &User{}
	err := repository.pool.QueryRow(context, query, email).Scan(
		&user.ID, &user.Username, &user.Email, &user.Role, &user.CreatedAt, &user.UpdatedAt, &user.PasswordHash,
	)
	if err != nil {
		return nil, dberr.Wrap(err, resourceUser)
	}
	return user, nil
}

// ExistsByEmailOrUsername reports whether either value is already registered.
func (repository *PostgresUserRepository) ExistsByEmailOrUsername(context context.Context, email, username string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 OR %s = $2)`,
		schema.User.Table, schema.User.Email, schema.User.Username)

	var exists bool
	if err := repository.pool.QueryRow(context, query, email, username).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, resourceUser)
	}
	return exists, nil
}
