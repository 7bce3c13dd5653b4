// Package handler provides HTTP handlers for all API endpoints. Handlers
// translate requests into repository/service calls behind narrow interfaces
// and serialize results to JSON.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/albapepper/dugout/internal/api/respond"
	"github.com/albapepper/dugout/internal/player"
	"github.com/albapepper/dugout/internal/seed"
)

// PlayerStore is the repository surface the handlers use.
type PlayerStore interface {
	GetAll(ctx context.Context, key player.SortKey) ([]player.Player, error)
	GetByID(ctx context.Context, id int64) (*player.Player, error)
	Update(ctx context.Context, id int64, upd player.Update) (*player.Player, error)
	Count(ctx context.Context) (int, error)
}

// Describer serves read-through-cached player descriptions.
type Describer interface {
	GetOrCreate(ctx context.Context, id int64) (string, error)
}

// SyncFunc runs a full import from the external stats feed.
type SyncFunc func(ctx context.Context) (seed.SyncResult, error)

// HealthPinger verifies database connectivity.
type HealthPinger interface {
	HealthCheck(ctx context.Context) error
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	store    PlayerStore
	describe Describer
	sync     SyncFunc
	dbHealth HealthPinger
	logger   *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(store PlayerStore, describe Describer, sync SyncFunc, dbHealth HealthPinger, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:    store,
		describe: describe,
		sync:     sync,
		dbHealth: dbHealth,
		logger:   logger,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, and status.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Dugout API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
		"app":     "/app/",
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if err := h.dbHealth.HealthCheck(r.Context()); err != nil {
		h.logger.Error("database health check failed", "error", err)
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	body := map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if n, err := h.store.Count(r.Context()); err == nil {
		body["players"] = n
	} else {
		h.logger.Error("player count failed", "error", err)
	}
	respond.WriteJSONObject(w, http.StatusOK, body)
}
