package handlers

import (
	"database/sql"
	"net/http"

	"github.com/redis/go-redis/v9"
)

// Health reports service liveness and dependency reachability.
type Health struct {
	db     *sql.DB
	valkey *redis.Client
}

// NewHealth creates the health handler. valkey may be nil.
func NewHealth(db *sql.DB, valkey *redis.Client) *Health {
	return &Health{db: db, valkey: valkey}
}

// Check pings the database and cache. Returns 503 when a dependency is
// down so load balancers stop routing here.
func (h *Health) Check(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	deps := map[string]string{}

	if err := h.db.PingContext(r.Context()); err != nil {
		deps["postgres"] = "down"
		status = http.StatusServiceUnavailable
	} else {
		deps["postgres"] = "ok"
	}

	if h.valkey != nil {
		if err := h.valkey.Ping(r.Context()).Err(); err != nil {
			deps["valkey"] = "down"
			status = http.StatusServiceUnavailable
		} else {
			deps["valkey"] = "ok"
		}
	}

	writeJSON(w, status, map[string]any{
		"status": http.StatusText(status),
		"deps":   deps,
	})
}
