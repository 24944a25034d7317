package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const healthCheckTimeout = 2 * time.Second

type HealthHandler struct {
	client *mongo.Client
	rdb    *redis.Client
}

// NewHealthHandler returns the liveness/readiness handler. rdb may be nil
// when Redis is not configured; readiness then reports it as disabled.
func NewHealthHandler(client *mongo.Client, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{client: client, rdb: rdb}
}

// Liveness reports that the process is running.
//
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness reports whether the backing dependencies answer. Mongo being
// down fails the probe; Redis is advisory because the API degrades to
// running without dedup.
//
// @Summary      Readiness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health/ready [get]
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	deps := map[string]string{"mongo": "ok", "redis": "ok"}
	status := http.StatusOK

	if err := h.client.Ping(ctx, readpref.Primary()); err != nil {
		deps["mongo"] = "down"
		status = http.StatusServiceUnavailable
	}

	if h.rdb == nil {
		deps["redis"] = "disabled"
	} else if err := h.rdb.Ping(ctx).Err(); err != nil {
		deps["redis"] = "down"
	}

	return c.JSON(status, deps)
}
