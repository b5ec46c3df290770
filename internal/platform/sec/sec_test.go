// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/linkshelf/internal/platform/sec"
)

func newTokenService(t *testing.T, accessTTL, refreshTTL time.Duration) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService(sec.TokenConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
		Issuer:        "linkshelf.test",
	})
	require.NoError(t, err)
	return service
}

/*
TestAccessToken_RoundTrip verifies that a valid token resolves the identity it was issued for.
*/
func TestAccessToken_RoundTrip(t *testing.T) {
	service := newTokenService(t, time.Hour, 24*time.Hour)
	identity := sec.Identity{ID: "0192e0a4-0000-7000-8000-000000000001", Username: "ada", Role: sec.RoleAdmin}

	token, err := service.IssueAccessToken(identity)
	require.NoError(t, err)

	claims, err := service.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, identity.ID, claims.UserID)
	assert.Equal(t, identity.Username, claims.Username)
	assert.Equal(t, sec.RoleAdmin, claims.Role)
	assert.Equal(t, "linkshelf.test", claims.Issuer)
}

/*
TestAccessToken_Expired verifies that tokens past their expiry report the expired signal.
*/
func TestAccessToken_Expired(t *testing.T) {
	service := newTokenService(t, -time.Minute, time.Hour)

	token, err := service.IssueAccessToken(sec.Identity{ID: "u1", Username: "ada", Role: sec.RoleUser})
	require.NoError(t, err)

	_, err = service.VerifyAccessToken(token)
	assert.ErrorIs(t, err, sec.ErrTokenExpired)
}

/*
TestAccessToken_Invalid covers malformed, tampered and foreign-secret tokens.
*/
func TestAccessToken_Invalid(t *testing.T) {
	service := newTokenService(t, time.Hour, time.Hour)
	other, err := sec.NewTokenService(sec.TokenConfig{AccessSecret: "another", AccessTTL: time.Hour})
	require.NoError(t, err)

	foreign, err := other.IssueAccessToken(sec.Identity{ID: "u1", Role: sec.RoleUser})
	require.NoError(t, err)

	valid, err := service.IssueAccessToken(sec.Identity{ID: "u1", Role: sec.RoleUser})
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"foreign_secret", foreign},
		{"swapped_signature", foreign[:strings.LastIndex(foreign, ".")] + valid[strings.LastIndex(valid, "."):]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.VerifyAccessToken(tt.token)
			assert.ErrorIs(t, err, sec.ErrTokenInvalid)
		})
	}
}

/*
TestRefreshToken_NotAcceptedAsAccess verifies the audience separation when both secrets are equal.
*/
func TestRefreshToken_NotAcceptedAsAccess(t *testing.T) {
	service, err := sec.NewTokenService(sec.TokenConfig{
		AccessSecret: "shared",
		AccessTTL:    time.Hour,
		RefreshTTL:   time.Hour,
	})
	require.NoError(t, err)

	refresh, err := service.IssueRefreshToken("u1")
	require.NoError(t, err)

	claims, err := service.VerifyRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)

	_, err = service.VerifyAccessToken(refresh)
	assert.ErrorIs(t, err, sec.ErrTokenInvalid)
}

/*
TestNewTokenService_RequiresSecret verifies construction fails without signing material.
*/
func TestNewTokenService_RequiresSecret(t *testing.T) {
	_, err := sec.NewTokenService(sec.TokenConfig{})
	assert.Error(t, err)
}

/*
TestPasswordHash verifies the one-way hash and its verification.
*/
func TestPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, "secret1", hash)
	assert.True(t, sec.CheckPasswordHash("secret1", hash))
	assert.False(t, sec.CheckPasswordHash("secret2", hash))
}

/*
TestRole_In verifies role set membership.
*/
func TestRole_In(t *testing.T) {
	assert.True(t, sec.RoleAdmin.In(sec.RoleAdmin))
	assert.False(t, sec.RoleUser.In(sec.RoleAdmin))
	assert.False(t, sec.RoleUser.In())
	assert.True(t, sec.RoleUser.Valid())
	assert.False(t, sec.Role("root").Valid())
}
