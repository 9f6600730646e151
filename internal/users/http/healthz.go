package http

import (
	"net/http"
	"time"

	"github.com/valentincuzin/usergate/internal/users/store"
	"github.com/valentincuzin/usergate/pkg/httpx"
)

// HealthzHandler reports service liveness and whether the identity
// store is reachable.
func HealthzHandler(startTime time.Time, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		code := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, map[string]string{
			"status": status,
			"uptime": time.Since(startTime).String(),
		})
	}
}
