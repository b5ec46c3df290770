// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/linkshelf/internal/ai"
	"github.com/taibuivan/linkshelf/internal/api"
	"github.com/taibuivan/linkshelf/internal/auth"
	"github.com/taibuivan/linkshelf/internal/category"
	"github.com/taibuivan/linkshelf/internal/platform/apperr"
	"github.com/taibuivan/linkshelf/internal/platform/config"
	"github.com/taibuivan/linkshelf/internal/platform/constants"
	"github.com/taibuivan/linkshelf/internal/platform/sec"
	"github.com/taibuivan/linkshelf/internal/site"
	"github.com/taibuivan/linkshelf/internal/upload"
)

// staticResolver resolves a fixed set of identities.
type staticResolver map[string]sec.Identity

func (resolver staticResolver) ResolveIdentity(_ context.Context, userID string) (*sec.Identity, error) {
	identity, ok := resolver[userID]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return &identity, nil
}

var (
	adminIdentity = sec.Identity{ID: "0190c1a2-0000-7000-8000-0000000000a1", Username: "root", Role: sec.RoleAdmin}
	userIdentity  = sec.Identity{ID: "0190c1a2-0000-7000-8000-0000000000b1", Username: "ada", Role: sec.RoleUser}
)

type fixture struct {
	handler http.Handler
	tokens  *sec.TokenService
}

func newFixture(t *testing.T, deps api.HealthDependencies, configure ...func(*config.Config)) *fixture {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	tokens, err := sec.NewTokenService(sec.TokenConfig{
		AccessSecret:  "server-test-access",
		RefreshSecret: "server-test-refresh",
		AccessTTL:     time.Hour,
		RefreshTTL:    time.Hour,
		Issuer:        constants.AuthIssuer,
	})
	require.NoError(t, err)

	resolver := staticResolver{adminIdentity.ID: adminIdentity, userIdentity.ID: userIdentity}
	liveness, readiness := api.NewHealthHandlers(deps, logger)

	// Repositories are nil: requests reaching a store would panic and show up as 500s.
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(auth.NewService(nil, tokens, sec.RoleUser, logger), false),
		Category:  category.NewHandler(category.NewService(nil, logger)),
		Site:      site.NewHandler(site.NewService(nil, logger)),
		AI:        ai.NewHandler(ai.NewService(nil, nil, logger)),
		Upload:    upload.NewHandler(nil, 1<<20),
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := &config.Config{ServerPort: "0", Environment: "production", CORSOrigin: "http://localhost:3000"}
	for _, apply := range configure {
		apply(cfg)
	}
	server := api.NewServer(ctx, cfg, logger, nil, api.Security{Verifier: tokens, Resolver: resolver}, handlers)

	return &fixture{handler: server.Handler(), tokens: tokens}
}

func (f *fixture) do(t *testing.T, method, target, body string, identity *sec.Identity) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	if identity != nil {
		token, err := f.tokens.IssueAccessToken(*identity)
		require.NoError(t, err)
		request.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	f.handler.ServeHTTP(recorder, request)

	var decoded map[string]any
	_ = json.Unmarshal(recorder.Body.Bytes(), &decoded)
	return recorder, decoded
}

/*
TestServer_Infrastructure verifies the root message, health checks, metrics and unknown routes.
*/
func TestServer_Infrastructure(t *testing.T) {
	f := newFixture(t, api.HealthDependencies{
		CheckDatabase: func(context.Context) error { return nil },
		AIConfigured:  func() bool { return false },
	})

	recorder, body := f.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "Server is working", body["message"])
	assert.NotEmpty(t, recorder.Header().Get(constants.HeaderXRequestID))

	recorder, body = f.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "ok", body["status"])

	recorder, body = f.do(t, http.MethodGet, "/ready", "", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "ready", body["status"])
	assert.Len(t, body["checks"], 2)

	recorder, _ = f.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "http_requests_total")

	recorder, body = f.do(t, http.MethodGet, "/api/nothing-here", "", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "Route not found", body["message"])
}

/*
TestServer_ReadinessDegraded verifies a failing dependency turns /ready into a 503.
*/
func TestServer_ReadinessDegraded(t *testing.T) {
	f := newFixture(t, api.HealthDependencies{
		CheckDatabase: func(context.Context) error { return nil },
		CheckCache:    func(context.Context) error { return errors.New("redis: ping failed") },
	})

	recorder, body := f.do(t, http.MethodGet, "/ready", "", nil)

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "degraded", body["status"])
}

/*
TestServer_RoleGating verifies the admin chain on every privileged mount.
*/
func TestServer_RoleGating(t *testing.T) {
	f := newFixture(t, api.HealthDependencies{})

	privileged := []struct {
		method string
		target string
	}{
		{http.MethodPost, "/api/categories"},
		{http.MethodDelete, "/api/categories/0190c1a2-0000-7000-8000-0000000000c1"},
		{http.MethodPost, "/api/sites"},
		{http.MethodPatch, "/api/sites/0190c1a2-0000-7000-8000-0000000000d1"},
		{http.MethodDelete, "/api/sites/0190c1a2-0000-7000-8000-0000000000d1"},
		{http.MethodPost, "/api/ai/generate-description"},
		{http.MethodPost, "/api/upload-helper/cover-image"},
	}

	for _, route := range privileged {
		t.Run(route.method+" "+route.target, func(t *testing.T) {
			recorder, body := f.do(t, route.method, route.target, `{}`, nil)
			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
			assert.Equal(t, "Unauthorized request", body["message"])

			recorder, body = f.do(t, route.method, route.target, `{}`, &userIdentity)
			assert.Equal(t, http.StatusForbidden, recorder.Code)
			assert.Equal(t, "You do not have permission to perform this action", body["message"])
		})
	}
}

/*
TestServer_AdminReachesHandlers verifies an admin passes the chain and meets handler validation.
*/
func TestServer_AdminReachesHandlers(t *testing.T) {
	f := newFixture(t, api.HealthDependencies{})

	recorder, body := f.do(t, http.MethodPost, "/api/categories", `{}`, &adminIdentity)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Validation Error", body["message"])

	recorder, body = f.do(t, http.MethodPost, "/api/ai/generate-description", `{"title":"Go"}`, &adminIdentity)
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, "AI provider API key not configured", body["message"])
}

/*
TestServer_CORSPreflight verifies the configured origin is admitted with credentials.
*/
func TestServer_CORSPreflight(t *testing.T) {
	f := newFixture(t, api.HealthDependencies{})

	request := httptest.NewRequest(http.MethodOptions, "/api/sites", nil)
	request.Header.Set(constants.HeaderOrigin, "http://localhost:3000")
	request.Header.Set("Access-Control-Request-Method", http.MethodPost)
	recorder := httptest.NewRecorder()
	f.handler.ServeHTTP(recorder, request)

	assert.Equal(t, "http://localhost:3000", recorder.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", recorder.Header().Get("Access-Control-Allow-Credentials"))
}

/*
TestServer_ForwardedHeaders verifies that forwarding headers only pick the
rate limit bucket when the server is configured to trust its proxy.
*/
func TestServer_ForwardedHeaders(t *testing.T) {
	burst := func(f *fixture) []int {
		codes := make([]int, 0, 60)
		for i := range 60 {
			request := httptest.NewRequest(http.MethodGet, "/health", nil)
			request.RemoteAddr = "10.0.0.1:4000"
			request.Header.Set("X-Forwarded-For", fmt.Sprintf("192.0.2.%d", i+1))
			recorder := httptest.NewRecorder()
			f.handler.ServeHTTP(recorder, request)
			codes = append(codes, recorder.Code)
		}
		return codes
	}

	t.Run("untrusted", func(t *testing.T) {
		codes := burst(newFixture(t, api.HealthDependencies{}))
		assert.Contains(t, codes, http.StatusTooManyRequests)
	})

	t.Run("trusted", func(t *testing.T) {
		codes := burst(newFixture(t, api.HealthDependencies{}, func(cfg *config.Config) { cfg.TrustProxy = true }))
		assert.NotContains(t, codes, http.StatusTooManyRequests)
	})
}
