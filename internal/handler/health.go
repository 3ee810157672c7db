package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	apperrors "github.com/vasool/collection-engine/pkg/errors"
	"github.com/vasool/collection-engine/pkg/response"
)

const readinessTimeout = 5 * time.Second

type HealthHandler struct {
	db    *sqlx.DB
	cache *redis.Client
}

func NewHealthHandler(db *sqlx.DB, cache *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Health handles GET /health. Liveness only; no dependency checks.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]string{"status": "ok"})
}

// Ready handles GET /health/ready. Unreachable dependencies turn into a
// 503 through the same error envelope every other handler uses.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	var down []string
	if err := h.db.PingContext(ctx); err != nil {
		down = append(down, "database")
	}
	if err := h.cache.Ping(ctx).Err(); err != nil {
		down = append(down, "redis")
	}

	if len(down) > 0 {
		response.Error(w, http.StatusServiceUnavailable, apperrors.KindInternal,
			"not ready: "+strings.Join(down, ", "))
		return
	}

	response.Success(w, map[string]string{"database": "ok", "redis": "ok"})
}
