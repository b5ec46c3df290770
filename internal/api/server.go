// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taibuivan/linkshelf/internal/ai"
	"github.com/taibuivan/linkshelf/internal/auth"
	"github.com/taibuivan/linkshelf/internal/category"
	"github.com/taibuivan/linkshelf/internal/platform/apperr"
	"github.com/taibuivan/linkshelf/internal/platform/config"
	"github.com/taibuivan/linkshelf/internal/platform/constants"
	"github.com/taibuivan/linkshelf/internal/platform/ctxutil"
	"github.com/taibuivan/linkshelf/internal/platform/middleware"
	"github.com/taibuivan/linkshelf/internal/platform/respond"
	"github.com/taibuivan/linkshelf/internal/platform/sec"
	"github.com/taibuivan/linkshelf/internal/site"
	"github.com/taibuivan/linkshelf/internal/upload"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler. It returns 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It returns 200 when all required deps are healthy.
	Readiness http.HandlerFunc

	Auth     *auth.Handler
	Category *category.Handler
	Site     *site.Handler
	AI       *ai.Handler
	Upload   *upload.Handler
}

// Security bundles what the bearer gate needs.
type Security struct {
	Verifier middleware.TokenVerifier
	Resolver middleware.IdentityResolver
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups. ctx bounds background middleware goroutines;
// errorSink receives a copy of every failure record and may be nil.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, errorSink *slog.Logger, security Security, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	if cfg.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.ErrorPolicy(ctxutil.ErrorPolicy{Verbose: cfg.IsDevelopment(), Sink: errorSink}))
	r.Use(middleware.Metrics())
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.RateLimit(ctx, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
	r.Use(middleware.SecureHeaders())
	r.Use(middleware.CORS(cfg.CORSOrigin))
	r.Use(chimw.Compress(5))
	r.Use(chimw.CleanPath)
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))

	r.NotFound(func(writer http.ResponseWriter, request *http.Request) {
		respond.Error(writer, request, apperr.NotFound("Route"))
	})

	// # Infrastructure Endpoints
	r.Get("/", func(writer http.ResponseWriter, request *http.Request) {
		respond.Success(writer, http.StatusOK, "Server is working", nil)
	})
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// # Application API
	authenticate := middleware.Authenticate(security.Verifier, security.Resolver)
	admin := []func(http.Handler) http.Handler{authenticate, middleware.RequireRole(sec.RoleAdmin)}

	r.Route("/api", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes(authenticate))
		api.Mount("/categories", h.Category.Routes(admin...))
		api.Mount("/sites", h.Site.Routes(admin...))
		api.Mount("/ai", h.AI.Routes(admin...))
		api.Mount("/upload-helper", h.Upload.Routes(admin...))
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the fully wired router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
