package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth_AlwaysOK(t *testing.T) {
	h := NewHealthHandler(nil, nil)

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestReady_UnreachableDependenciesAre503(t *testing.T) {
	// Nothing listens on these ports, so both pings fail immediately.
	db, err := sqlx.Open("postgres", "host=127.0.0.1 port=1 sslmode=disable connect_timeout=1")
	require.NoError(t, err)
	defer db.Close()

	cache := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer cache.Close()

	h := NewHealthHandler(db, cache)

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest("GET", "/health/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "not ready")
	assert.Contains(t, rec.Body.String(), "database")
	assert.Contains(t, rec.Body.String(), "redis")
}
