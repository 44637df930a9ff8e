// Copyright (c) 2026 BookWise. All rights reserved.
// Author: duc.lethanh.dev@gmail.com

// Command api runs the BookWise API server.
//
// Startup is strictly ordered: configuration, storage, migrations, identity,
// domain wiring, then traffic. Any failure before the listener opens is
// fatal; after that the server drains gracefully on SIGINT/SIGTERM.
package main

import (
	stdctx "context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/lethanhduc/bookwise/internal/api"
	"github.com/lethanhduc/bookwise/internal/auth"
	"github.com/lethanhduc/bookwise/internal/blog"
	"github.com/lethanhduc/bookwise/internal/book"
	"github.com/lethanhduc/bookwise/internal/catalog"
	"github.com/lethanhduc/bookwise/internal/catalog/gutenberg"
	"github.com/lethanhduc/bookwise/internal/catalog/modern"
	"github.com/lethanhduc/bookwise/internal/platform/config"
	"github.com/lethanhduc/bookwise/internal/platform/constants"
	"github.com/lethanhduc/bookwise/internal/platform/migration"
	"github.com/lethanhduc/bookwise/internal/platform/postgres"
	"github.com/lethanhduc/bookwise/internal/platform/redis"
	"github.com/lethanhduc/bookwise/internal/platform/sec"
	"github.com/lethanhduc/bookwise/internal/platform/snapshot"
	"github.com/lethanhduc/bookwise/internal/summary"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server_exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	rootCtx, stop := signal.NotifyContext(stdctx.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── 1. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// ── 2. Structured Logging ─────────────────────────────────────────────
	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(logger)

	logger.Info("starting",
		slog.String("version", constants.AppVersion),
		slog.String("environment", cfg.Environment),
	)

	// ── 3. PostgreSQL (Snapshot Store) ────────────────────────────────────
	pool, err := postgres.NewPool(rootCtx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	// ── 4. Schema Migrations ──────────────────────────────────────────────
	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, logger); err != nil {
		return err
	}

	// ── 5. Redis (Keys & Revocations) ─────────────────────────────────────
	redisClient, err := redis.NewClient(rootCtx, cfg.RedisURL, logger)
	if err != nil {
		return err
	}
	defer func() { _ = redisClient.Close() }()

	// ── 6. Identity Signing ───────────────────────────────────────────────
	tokenService, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	if err != nil {
		return err
	}

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	store := snapshot.NewPostgresStore(pool)

	bookCollection := snapshot.NewCollection(store, constants.CollectionBooks, []catalog.Book{}, logger)
	commentCollection := snapshot.NewCollection(store, constants.CollectionComments, []book.Comment{}, logger)
	likeCollection := snapshot.NewCollection(store, constants.CollectionLikes, []book.Like{}, logger)
	postCollection := snapshot.NewCollection(store, constants.CollectionBlogPosts, []blog.Post{}, logger)
	accountCollection := snapshot.NewCollection(store, constants.CollectionAccounts, []auth.Account{}, logger)

	authService := auth.NewService(accountCollection, tokenService, auth.NewRedisDenylist(redisClient), logger)
	if err := authService.SeedAdmin(rootCtx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return err
	}

	bookService := book.NewService(
		bookCollection,
		commentCollection,
		likeCollection,
		gutenberg.NewClient(cfg.GutendexBaseURL, logger),
		modern.NewGenerator(cfg.ModernSeed),
		logger,
	)

	blogService := blog.NewService(postCollection)

	summaryService := summary.NewService(
		summary.NewRedisKeyStore(redisClient),
		summary.NewGenerator(cfg.TextGenBaseURL, cfg.TextGenModel, logger),
	)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	router := api.NewRouter(rootCtx, api.Dependencies{
		Config:   cfg,
		Logger:   logger,
		Pool:     pool,
		Redis:    redisClient,
		Auth:     authService,
		Books:    bookService,
		Blog:     blogService,
		Summary:  summaryService,
		Verifier: authService,
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadTimeout:       constants.DefaultReadTimeout,
		ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		WriteTimeout:      constants.DefaultWriteTimeout,
		IdleTimeout:       constants.DefaultIdleTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-rootCtx.Done():
		logger.Info("shutdown_signal_received")

		shutdownCtx, cancel := stdctx.WithTimeout(stdctx.Background(), constants.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			_ = server.Close()
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	logger.Info("stopped")
	return nil
}
