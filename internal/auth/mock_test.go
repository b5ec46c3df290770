// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/linkshelf/internal/auth"
	"github.com/taibuivan/linkshelf/internal/platform/constants"
	"github.com/taibuivan/linkshelf/internal/platform/sec"
)

// mockUserRepository is a testify mock of [auth.UserRepository].
type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *auth.User, plainPassword string) error {
	args := m.Called(ctx, user, plainPassword)
	return args.Error(0)
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, id, plainPassword string) error {
	args := m.Called(ctx, id, plainPassword)
	return args.Error(0)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*auth.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) FindByEmailWithPassword(ctx context.Context, email string) (*auth.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*auth.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	args := m.Called(ctx, email, username)
	return args.Bool(0), args.Error(1)
}

func newTokenService(t *testing.T) *sec.TokenService {
	t.Helper()
	tokens, err := sec.NewTokenService(sec.TokenConfig{
		AccessSecret:  "auth-test-access",
		RefreshSecret: "auth-test-refresh",
		AccessTTL:     time.Hour,
		RefreshTTL:    24 * time.Hour,
		Issuer:        constants.AuthIssuer,
	})
	require.NoError(t, err)
	return tokens
}

func newService(t *testing.T, users auth.UserRepository) (*auth.Service, *sec.TokenService) {
	t.Helper()
	tokens := newTokenService(t)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return auth.NewService(users, tokens, sec.RoleUser, logger), tokens
}

func storedUser(t *testing.T, password string) *auth.User {
	t.Helper()
	hash, err := sec.HashPassword(password)
	require.NoError(t, err)
	return &auth.User{
		ID:           "0190c1a2-0000-7000-8000-000000000001",
		Username:     "ada",
		Email:        "ada@x.com",
		PasswordHash: hash,
		Role:         sec.RoleUser,
		CreatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}
