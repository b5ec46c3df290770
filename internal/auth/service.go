// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/linkshelf/internal/platform/apperr"
	"github.com/taibuivan/linkshelf/internal/platform/sec"
	"github.com/taibuivan/linkshelf/internal/platform/validate"
	"github.com/taibuivan/linkshelf/pkg/casefold"
	"github.com/taibuivan/linkshelf/pkg/uuid"
)

// TokenIssuer is the subset of [sec.TokenService] the auth flows need.
type TokenIssuer interface {
	IssueAccessToken(identity sec.Identity) (string, error)
	IssueRefreshToken(userID string) (string, error)
	VerifyRefreshToken(tokenString string) (*sec.RefreshClaims, error)
	RefreshTTL() time.Duration
}

// Service implements the account use cases.
type Service struct {
	users       UserRepository
	tokens      TokenIssuer
	defaultRole sec.Role
	logger      *slog.Logger
}

// NewService constructs an auth [Service]. Self-registered accounts receive defaultRole.
func NewService(users UserRepository, tokens TokenIssuer, defaultRole sec.Role, logger *slog.Logger) *Service {
	return &Service{
		users:       users,
		tokens:      tokens,
		defaultRole: defaultRole,
		logger:      logger,
	}
}

// # Inputs

// SignupInput carries the fields accepted by [Service.Signup].
type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput carries the fields accepted by [Service.Login].
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordInput carries the fields accepted by [Service.ChangePassword].
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// # Account Lifecycle

/*
Signup registers a new account and opens a session for it.

Description: Username and email are case-folded before the uniqueness check
and before persistence. A collision on either field yields the same
duplicate-identity error, whichever field collided.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *Session: Sanitized user plus access and refresh tokens
  - error: Validation, Conflict or persistence failures
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*Session, error) {
	username := casefold.Fold(input.Username)
	email := casefold.Fold(input.Email)

	validator := &validate.Validator{}
	validator.Required(FieldUsername, username).
		MinLen(FieldUsername, username, UsernameMinLength).
		MaxLen(FieldUsername, username, UsernameMaxLength).
		Required(FieldEmail, email).
		Email(FieldEmail, email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, PasswordMinLength)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	exists, err := service.users.ExistsByEmailOrUsername(context, email, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict(msgDuplicateIdentity)
	}

	user := &User{
		ID:       uuid.New(),
		Username: username,
		Email:    email,
		Role:     service.defaultRole,
	}

	if err := service.users.Create(context, user, input.Password); err != nil {
		// A concurrent signup can pass the existence check and lose the insert race.
		if apperr.KindOf(err) == apperr.KindConflict {
			return nil, apperr.Conflict(msgDuplicateIdentity).WithCause(err)
		}
		return nil, err
	}

	service.logger.Info("user_registered",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)

	return service.openSession(user)
}

/*
Login verifies credentials and opens a session.

Description: An unknown email and a wrong password produce the identical
error so callers cannot probe which accounts exist.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *Session: Sanitized user plus access and refresh tokens
  - error: Validation or Unauthorized("Invalid credentials")
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {
	email := casefold.Fold(input.Email)

	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).
		Email(FieldEmail, email).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.users.FindByEmailWithPassword(context, email)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.Unauthorized(msgInvalidCredentials)
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized(msgInvalidCredentials)
	}

	user.PasswordHash = ""
	return service.openSession(user)
}

/*
Refresh exchanges a refresh token for a new access token.

Description: The refresh token itself is not rotated. The user is re-read so
that a deleted account cannot keep refreshing and a changed role is picked
up by the next access token.

Parameters:
  - context: context.Context
  - refreshToken: string (cookie value)

Returns:
  - string: New access token
  - error: Unauthorized for a missing, invalid or orphaned token
*/
func (service *Service) Refresh(context context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", apperr.Unauthorized(msgNoRefreshToken)
	}

	claims, err := service.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", apperr.Unauthorized(msgInvalidRefresh).WithCause(err)
	}

	user, err := service.users.FindByID(context, claims.UserID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return "", apperr.Unauthorized(msgInvalidRefresh).WithCause(err)
		}
		return "", err
	}

	accessToken, err := service.tokens.IssueAccessToken(user.Identity())
	if err != nil {
		return "", fmt.Errorf("refresh: issue access token: %w", err)
	}
	return accessToken, nil
}

/*
Me returns the sanitized profile of the authenticated caller.
*/
func (service *Service) Me(context context.Context, userID string) (*User, error) {
	return service.users.FindByID(context, userID)
}

/*
ChangePassword replaces the caller's password after re-checking the current one.

Parameters:
  - context: context.Context
  - identity: *sec.Identity (the authenticated caller)
  - input: ChangePasswordInput

Returns:
  - error: Validation, BadRequest on a wrong current password, or persistence failures
*/
func (service *Service) ChangePassword(context context.Context, identity *sec.Identity, input ChangePasswordInput) error {
	validator := &validate.Validator{}
	validator.Required(FieldCurrentPassword, input.CurrentPassword).
		Required(FieldNewPassword, input.NewPassword).
		MinLen(FieldNewPassword, input.NewPassword, PasswordMinLength)

	if err := validator.Err(); err != nil {
		return err
	}

	user, err := service.users.FindByEmailWithPassword(context, identity.Email)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(input.CurrentPassword, user.PasswordHash) {
		return apperr.BadRequest(msgWrongPassword)
	}

	if err := service.users.UpdatePassword(context, user.ID, input.NewPassword); err != nil {
		return err
	}

	service.logger.Info("user_password_changed", slog.String("user_id", user.ID))
	return nil
}

// # Identity Resolution

// ResolveIdentity loads the current identity for the bearer middleware.
// It returns a KindNotFound error when the account no longer exists.
func (service *Service) ResolveIdentity(context context.Context, userID string) (*sec.Identity, error) {
	user, err := service.users.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	identity := user.Identity()
	return &identity, nil
}

// openSession issues the token pair for an authenticated user.
func (service *Service) openSession(user *User) (*Session, error) {
	accessToken, err := service.tokens.IssueAccessToken(user.Identity())
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	refreshToken, err := service.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	return &Session{
		User:             user,
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: time.Now().Add(service.tokens.RefreshTTL()),
	}, nil
}
