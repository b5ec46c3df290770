// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, JWT signing) from
// the domain logic. Access and refresh tokens are HS256-signed with separate
// secrets and carry an audience claim so one can never stand in for the other.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	audienceAccess  = "access"
	audienceRefresh = "refresh"
)

var (
	// ErrTokenExpired is returned for a well-signed token past its expiry.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid is returned for malformed tokens, bad signatures and wrong token types.
	ErrTokenInvalid = errors.New("token invalid")
)

// AccessClaims is the payload of an access token.
type AccessClaims struct {
	jwt.RegisteredClaims

	UserID   string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// RefreshClaims is the payload of a refresh token. It only names the user.
type RefreshClaims struct {
	jwt.RegisteredClaims

	UserID string `json:"id"`
}

// TokenConfig carries the signing material and lifetimes.
type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
}

// TokenService issues and verifies HS256 access and refresh tokens.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
}

// NewTokenService validates cfg and builds a [TokenService].
// An empty refresh secret falls back to the access secret.
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if cfg.AccessSecret == "" {
		return nil, errors.New("sec: access token secret is required")
	}

	refreshSecret := cfg.RefreshSecret
	if refreshSecret == "" {
		refreshSecret = cfg.AccessSecret
	}

	return &TokenService{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		issuer:        cfg.Issuer,
	}, nil
}

// RefreshTTL returns the configured refresh token lifetime.
func (service *TokenService) RefreshTTL() time.Duration { return service.refreshTTL }

// IssueAccessToken creates a signed access token for identity.
func (service *TokenService) IssueAccessToken(identity Identity) (string, error) {
	claims := AccessClaims{
		RegisteredClaims: service.registered(identity.ID, audienceAccess, service.accessTTL),
		UserID:           identity.ID,
		Username:         identity.Username,
		Role:             identity.Role,
	}
	return service.sign(claims, service.accessSecret)
}

// IssueRefreshToken creates a signed refresh token for userID.
func (service *TokenService) IssueRefreshToken(userID string) (string, error) {
	claims := RefreshClaims{
		RegisteredClaims: service.registered(userID, audienceRefresh, service.refreshTTL),
		UserID:           userID,
	}
	return service.sign(claims, service.refreshSecret)
}

// VerifyAccessToken checks signature, expiry and audience of an access token.
func (service *TokenService) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := service.parse(tokenString, claims, service.accessSecret, audienceAccess); err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrTokenInvalid)
	}
	return claims, nil
}

// VerifyRefreshToken checks signature, expiry and audience of a refresh token.
func (service *TokenService) VerifyRefreshToken(tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := service.parse(tokenString, claims, service.refreshSecret, audienceRefresh); err != nil {
		return nil, err
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrTokenInvalid)
	}
	return claims, nil
}

func (service *TokenService) registered(subject, audience string, timeToLive time.Duration) jwt.RegisteredClaims {
	currentTime := time.Now()
	return jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    service.issuer,
		Audience:  jwt.ClaimStrings{audience},
		IssuedAt:  jwt.NewNumericDate(currentTime),
		ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
	}
}

func (service *TokenService) sign(claims jwt.Claims, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}
	return signedToken, nil
}

// parse verifies tokenString into claims and folds jwt errors into
// [ErrTokenExpired] and [ErrTokenInvalid]. Anything else is returned wrapped as-is.
func (service *TokenService) parse(tokenString string, claims jwt.Claims, secret []byte, audience string) error {
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
	)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable),
		errors.Is(err, jwt.ErrTokenInvalidAudience),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	default:
		return fmt.Errorf("sec: token verification failed: %w", err)
	}
}
