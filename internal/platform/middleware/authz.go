// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/taibuivan/linkshelf/internal/platform/apperr"
	"github.com/taibuivan/linkshelf/internal/platform/constants"
	"github.com/taibuivan/linkshelf/internal/platform/ctxutil"
	"github.com/taibuivan/linkshelf/internal/platform/respond"
	"github.com/taibuivan/linkshelf/internal/platform/sec"
)

// TokenVerifier verifies access tokens. Implemented by [sec.TokenService].
type TokenVerifier interface {
	VerifyAccessToken(tokenString string) (*sec.AccessClaims, error)
}

// IdentityResolver loads the current state of the caller named by a token.
// It must return a KindNotFound error when the user no longer exists.
type IdentityResolver interface {
	ResolveIdentity(context context.Context, userID string) (*sec.Identity, error)
}

// Authenticate requires a valid bearer access token on every request it wraps.
//
// # Flow
//  1. Read 'Authorization: Bearer <token>'; absent or malformed is 401.
//  2. Verify the token; expired and invalid tokens get distinct 401 messages.
//  3. Re-load the user by the token's id; a deleted user is 401.
//  4. Inject the [*sec.Identity] into the request context.
func Authenticate(verifier TokenVerifier, resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Extraction ─────────────────────────────────────────────────
			tokenString, ok := bearerToken(request)
			if !ok {
				respond.Error(writer, request, apperr.Unauthorized("Unauthorized request"))
				return
			}

			// ── 2. Verification ───────────────────────────────────────────────
			claims, err := verifier.VerifyAccessToken(tokenString)
			switch {
			case errors.Is(err, sec.ErrTokenExpired):
				respond.Error(writer, request, apperr.Unauthorized("Token has expired").WithCause(err))
				return
			case errors.Is(err, sec.ErrTokenInvalid):
				respond.Error(writer, request, apperr.Unauthorized("Invalid token").WithCause(err))
				return
			case err != nil:
				respond.Error(writer, request, apperr.Unauthorized("Unauthorized request").WithCause(err))
				return
			}

			// ── 3. Resolution ─────────────────────────────────────────────────
			identity, err := resolver.ResolveIdentity(request.Context(), claims.UserID)
			if err != nil {
				if apperr.KindOf(err) == apperr.KindNotFound {
					respond.Error(writer, request, apperr.Unauthorized("Invalid access token").WithCause(err))
					return
				}
				respond.Error(writer, request, err)
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			recordUser(request.Context(), identity.ID)
			ctx := ctxutil.WithIdentity(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireRole admits a request iff the resolved identity's role is in roles.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. Without an identity
// in the context the request is rejected with 401, never admitted.
func RequireRole(roles ...sec.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			identity := ctxutil.GetIdentity(request.Context())

			if identity == nil {
				respond.Error(writer, request, apperr.Unauthorized("Unauthorized request"))
				return
			}

			if !identity.Role.In(roles...) {
				respond.Error(writer, request, apperr.Forbidden("You do not have permission to perform this action"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(request *http.Request) (string, bool) {
	header := request.Header.Get(constants.HeaderAuthorization)
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}
