// Copyright (c) 2026 BookWise. All rights reserved.
// Author: duc.lethanh.dev@gmail.com

/*
Package api assembles the HTTP surface: middleware chain, health probes, and
the versioned route tree.

Route map:

	GET  /health                     liveness
	GET  /ready                      readiness (postgres + redis)
	/api/v1
	  /auth      register, login, logout, me
	  /books     aggregated catalog, curation, likes, comments
	  /blog      posts by slug, curation
	  /summary   provider key management, draft generation
*/
package api

import (
	stdctx "context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/lethanhduc/bookwise/internal/auth"
	"github.com/lethanhduc/bookwise/internal/blog"
	"github.com/lethanhduc/bookwise/internal/book"
	"github.com/lethanhduc/bookwise/internal/platform/apperr"
	"github.com/lethanhduc/bookwise/internal/platform/config"
	"github.com/lethanhduc/bookwise/internal/platform/middleware"
	"github.com/lethanhduc/bookwise/internal/platform/respond"
	"github.com/lethanhduc/bookwise/internal/summary"
)

// Dependencies carries everything the router needs, wired in main.
type Dependencies struct {
	Config   *config.Config
	Logger   *slog.Logger
	Pool     *pgxpool.Pool
	Redis    *goredis.Client
	Auth     *auth.Service
	Books    *book.Service
	Blog     *blog.Service
	Summary  *summary.Service
	Verifier middleware.TokenVerifier
}

// NewRouter builds the full application router.
//
// Middleware order matters: request identity and logging wrap everything,
// panic recovery sits inside logging so panics are logged with request
// context, and authentication runs last so every guard below sees claims.
func NewRouter(lifecycle stdctx.Context, deps Dependencies) chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(deps.Logger))
	router.Use(middleware.PanicRecovery(deps.Logger))
	router.Use(middleware.CORS(deps.Config))
	router.Use(middleware.RateLimit(lifecycle))
	router.Use(middleware.Authenticate(deps.Verifier))

	health := newHealthHandler(deps.Pool, deps.Redis)
	router.Get("/health", health.live)
	router.Get("/ready", health.ready)

	router.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", auth.NewHandler(deps.Auth).Routes())
		api.Mount("/books", book.NewHandler(deps.Books).Routes())
		api.Mount("/blog", blog.NewHandler(deps.Blog).Routes())
		api.Mount("/summary", summary.NewHandler(deps.Summary).Routes())
	})

	router.NotFound(func(writer http.ResponseWriter, request *http.Request) {
		respond.Error(writer, request, apperr.NotFound("route"))
	})

	return router
}
