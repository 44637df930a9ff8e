// Copyright (c) 2026 BookWise. All rights reserved.
// Author: duc.lethanh.dev@gmail.com

package api

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/lethanhduc/bookwise/internal/platform/constants"
	"github.com/lethanhduc/bookwise/internal/platform/postgres"
	"github.com/lethanhduc/bookwise/internal/platform/redis"
	"github.com/lethanhduc/bookwise/internal/platform/respond"
)

// healthHandler serves the orchestrator probes.
type healthHandler struct {
	pool  *pgxpool.Pool
	redis *goredis.Client
}

func newHealthHandler(pool *pgxpool.Pool, redisClient *goredis.Client) *healthHandler {
	return &healthHandler{pool: pool, redis: redisClient}
}

// live reports process liveness. It never touches dependencies; a live but
// degraded process should be restarted by readiness, not liveness.
func (handler *healthHandler) live(writer http.ResponseWriter, _ *http.Request) {
	respond.JSON(writer, http.StatusOK, map[string]string{
		constants.FieldStatus: "ok",
		"version":             constants.AppVersion,
	})
}

// ready reports whether the server can do useful work: both the snapshot
// database and the Redis cache must answer.
func (handler *healthHandler) ready(writer http.ResponseWriter, request *http.Request) {
	checks := map[string]string{
		"postgres": "ok",
		"redis":    "ok",
	}
	healthy := true

	if err := postgres.Ping(request.Context(), handler.pool); err != nil {
		checks["postgres"] = err.Error()
		healthy = false
	}

	if err := redis.Ping(request.Context(), handler.redis); err != nil {
		checks["redis"] = err.Error()
		healthy = false
	}

	status := http.StatusOK
	overall := "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}

	respond.JSON(writer, status, map[string]interface{}{
		constants.FieldStatus: overall,
		constants.FieldChecks: checks,
	})
}
