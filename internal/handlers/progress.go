package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/example/videotrack/internal/platform/analytics"
	"github.com/example/videotrack/internal/platform/api"
	"github.com/example/videotrack/internal/platform/auth"
	"github.com/example/videotrack/internal/platform/httpserver"
	"github.com/example/videotrack/internal/progress"
)

type updateProgressRequest struct {
	WatchedMinutes int `json:"watched_minutes"`
}

// UpdateProgress records a watch-progress sample for the authenticated
// user and returns the stored state.
func UpdateProgress(engine *progress.Engine, ap *analytics.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())
		uid, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			api.Unauthorized(w, "AUTH_MISSING", "Missing auth", rid)
			return
		}

		videoID, ok := videoIDParam(r)
		if !ok {
			api.BadRequest(w, "INVALID_VIDEO_ID", "video_id must be a positive integer", rid)
			return
		}

		var req updateProgressRequest
		if !decodeJSON(w, r, rid, &req) {
			return
		}

		res, err := engine.RecordProgress(r.Context(), uid, videoID, req.WatchedMinutes)
		if err != nil {
			switch {
			case errors.Is(err, progress.ErrInvalidWatchedMinutes):
				api.BadRequest(w, "INVALID_WATCH_TIME", "Invalid watch time", rid)
			case errors.Is(err, progress.ErrVideoNotFound):
				api.NotFound(w, "VIDEO_NOT_FOUND", "Video not found", rid)
			default:
				api.Internal(w, rid)
			}
			return
		}

		ap.Publish(analytics.SubjectProgressUpdated, "progress_updated", uid, map[string]any{
			"video_id":        videoID,
			"watched_minutes": res.WatchedMinutes,
			"completed":       res.Completed,
		})
		api.WriteJSON(w, http.StatusOK, res)
	}
}

func videoIDParam(r *http.Request) (int64, bool) {
	raw := strings.TrimSpace(chi.URLParam(r, "video_id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
