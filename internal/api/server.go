// Copyright (c) 2026 D42X. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.

The middleware order is load-bearing: the cipher gate must decrypt before
the auth gate reads headers and before any handler decodes JSON, and it
encrypts on unwind after the handler completes. Health probes are mounted
outside /api so they are never ciphered or gated.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/d42x/d42x-api/internal/account"
	"github.com/d42x/d42x-api/internal/category"
	"github.com/d42x/d42x-api/internal/meme"
	"github.com/d42x/d42x-api/internal/platform/config"
	"github.com/d42x/d42x-api/internal/platform/constants"
	"github.com/d42x/d42x-api/internal/platform/middleware"
	"github.com/d42x/d42x-api/internal/platform/sec"
	"github.com/d42x/d42x-api/internal/suggest"
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
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Account handles the admin session (login, password, session probe).
	Account *account.Handler

	// Category handles the public and admin taxonomy endpoints.
	Category *category.Handler

	// Meme handles public browsing and voting.
	Meme *meme.Handler

	// MemeAdmin handles moderation (bulk post, listing, delete).
	MemeAdmin *meme.AdminHandler

	// Suggest handles visitor recategorization proposals.
	Suggest *suggest.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, bodyCipher *sec.BodyCipher, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution. CleanPath runs first
	// so the gates match on the canonical path: both gate predicates are
	// prefix checks, and a duplicate-slash path must not slip past them into
	// a routable handler. Cipher sits before Authenticate so gated handlers
	// always see decrypted JSON, and the response is encrypted after
	// everything inside has run.
	r.Use(chimw.CleanPath)
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(ctx))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.Cipher(bodyCipher))
	r.Use(middleware.Authenticate(verifier))

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api", func(api chi.Router) {
		api.Route("/client", func(client chi.Router) {
			h.Category.RegisterClientRoutes(client)
			h.Meme.RegisterClientRoutes(client)
			h.Suggest.RegisterClientRoutes(client)
		})

		api.Route("/admin", func(admin chi.Router) {
			h.Account.RegisterRoutes(admin)
			h.Category.RegisterAdminRoutes(admin)
			h.MemeAdmin.RegisterRoutes(admin)
			h.Suggest.RegisterAdminRoutes(admin)
		})
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

// Handler exposes the composed router, mainly for end-to-end tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
