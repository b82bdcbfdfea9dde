package handlers

import (
	"net/http"

	"github.com/example/videotrack/internal/platform/api"
	"github.com/example/videotrack/internal/platform/auth"
	"github.com/example/videotrack/internal/platform/httpserver"
	"github.com/example/videotrack/internal/progress"
)

// GetStats returns the caller's aggregate watch statistics.
func GetStats(agg *progress.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			api.Unauthorized(w, "AUTH_MISSING", "Missing auth", rid)
			return
		}

		stats, err := agg.ComputeStats(r.Context(), uid)
		if err != nil {
			api.Internal(w, rid)
			return
		}
		api.WriteJSON(w, http.StatusOK, stats)
	}
}
