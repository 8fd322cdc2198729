// Copyright (c) 2026 Mangacal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/web are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/mangacal/internal/core/reference"
	"github.com/taibuivan/mangacal/internal/core/release"
	"github.com/taibuivan/mangacal/internal/core/series"
	"github.com/taibuivan/mangacal/internal/platform/apperr"
	"github.com/taibuivan/mangacal/internal/platform/config"
	"github.com/taibuivan/mangacal/internal/platform/constants"
	"github.com/taibuivan/mangacal/internal/platform/middleware"
	"github.com/taibuivan/mangacal/internal/platform/otel"
	"github.com/taibuivan/mangacal/internal/platform/respond"
	"github.com/taibuivan/mangacal/internal/web"
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

// Handlers groups all HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler. It returns 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Release serves publications and the per-publisher ICS feeds.
	Release *release.Handler

	// Series serves the licensing database API.
	Series *series.Handler

	// Reference serves publishers and types.
	Reference *reference.Handler

	// Revalidate purges caches. Nil leaves the webhook unmounted.
	Revalidate http.Handler

	// Pages renders the HTML site.
	Pages *web.Handler
}

// # Server Initialization

// quietPaths skip the rate limiter and log at debug level.
var quietPaths = []string{"/static/", "/health", "/ready"}

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log, quietPaths...))
	r.Use(otel.Middleware())
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context, middleware.RateLimitConfig{
		RequestsPerSecond: constants.DefaultRateLimitRPS,
		Burst:             constants.DefaultRateLimitBurst,
		Exempt:            quietPaths,
	}))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg, "/api/", "/calendar/"))
	r.Use(chimw.CleanPath)

	// Set before mounting so every sub-router inherits it.
	r.NotFound(notFound(h.Pages))

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # JSON API
	r.Route("/api", func(api chi.Router) {
		api.Mount("/publications", h.Release.Routes())
		api.Mount("/series", h.Series.Routes())
		if h.Revalidate != nil {
			api.With(middleware.RequireToken(verifier)).Post("/revalidate", h.Revalidate.ServeHTTP)
		}
		api.Mount("/", h.Reference.Routes())
	})

	// # Subscription Feeds
	r.Get("/calendar/{publisher}.ics", h.Release.ServeFeed)

	// # Pages
	r.Mount("/", h.Pages.Routes())

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

// notFound answers JSON under /api and the error page elsewhere.
func notFound(pages *web.Handler) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		if pages == nil || strings.HasPrefix(request.URL.Path, "/api/") {
			respond.Error(writer, request, apperr.NotFound("Route"))
			return
		}
		pages.NotFound(writer, request)
	}
}

// Handler exposes the router, mainly for tests.
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
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
